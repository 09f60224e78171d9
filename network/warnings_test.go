package network_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/urban-transit/netbuild/network"
)

func TestWarningAggregatorCounts(t *testing.T) {
	warns := network.NewWarningAggregator()

	warns.Add(network.WarningMissingStop, "S1")
	warns.Add(network.WarningMissingStop, "S2")
	warns.Add(network.WarningMissingStop, "S1")
	warns.Add(network.WarningZeroHeadway, "T1")

	assert.Equal(t, 3, warns.Count(network.WarningMissingStop))
	assert.Equal(t, 1, warns.Count(network.WarningZeroHeadway))
	assert.Zero(t, warns.Count(network.WarningDroppedEdge))

	// Examples stay distinct even when an id repeats.
	assert.Equal(t, []string{"S1", "S2"}, warns.Examples(network.WarningMissingStop))
}

func TestWarningAggregatorExampleCap(t *testing.T) {
	warns := network.NewWarningAggregator()
	for i := range 50 {
		warns.Add(network.WarningDroppedEdge, fmt.Sprintf("T%d", i))
	}

	assert.Equal(t, 50, warns.Count(network.WarningDroppedEdge))
	assert.Len(t, warns.Examples(network.WarningDroppedEdge), 10)
}

func TestWarningAggregatorEmpty(t *testing.T) {
	warns := network.NewWarningAggregator()
	assert.Nil(t, warns.Examples(network.WarningMissingStop))
	warns.LogAll() // nothing to log, must not panic
}
