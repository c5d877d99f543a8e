package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChainBuilders(t *testing.T) {
	assert.Nil(t, alkane(0))
	assert.Nil(t, alkene(1))

	hexane := alkane(6)
	assert.Equal(t, "H14C6", hexane.Counter(nil).String())
	assert.Equal(t, 6+14, hexane.NodeCount())
	assert.Equal(t, 5+14, hexane.EdgeCount())

	decene := alkene(10)
	assert.Equal(t, "H20C10", decene.Counter(nil).String())
	assert.Equal(t, Double, decene.Edge(0))
	for e := EdgeIndex(1); int(e) < decene.EdgeCount(); e++ {
		assert.Equal(t, Single, decene.Edge(e))
	}
}
