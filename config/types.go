package config

// GTFSConfig points at a static GTFS dataset, a directory of .txt files or
// a .zip archive.
type GTFSConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// StoreConfig configures the output SQLite database.
type StoreConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// BuildConfig tunes the network build.
type BuildConfig struct {
	// Workers caps concurrent trip expansion; 0 means one per CPU.
	Workers int `yaml:"workers" validate:"gte=0"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	GTFS  GTFSConfig  `yaml:"gtfs" validate:"required"`
	Store StoreConfig `yaml:"store" validate:"required"`
	Build BuildConfig `yaml:"build"`
	Log   LogConfig   `yaml:"log"`
}
