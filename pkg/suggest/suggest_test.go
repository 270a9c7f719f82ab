package suggest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cedarfront/cedarfront/pkg/suggest"
)

func TestSuggestEmptyQuery(t *testing.T) {
	_, ok := suggest.Suggest("", []string{"principal"})
	assert.False(t, ok)
}

func TestSuggestExactMatchIsMonotone(t *testing.T) {
	best, ok := suggest.Suggest("principal", []string{"resource", "principal", "action"})
	assert.True(t, ok)
	assert.Equal(t, "principal", best)
}

func TestSuggestTypo(t *testing.T) {
	best, ok := suggest.Suggest("principl", []string{"resource", "principal", "action"})
	assert.True(t, ok)
	assert.Equal(t, "principal", best)
}

func TestSuggestTransposition(t *testing.T) {
	best, ok := suggest.Suggest("pricnipal", []string{"principal", "resource"})
	assert.True(t, ok)
	assert.Equal(t, "principal", best)
}

func TestSuggestNoneWithinThreshold(t *testing.T) {
	_, ok := suggest.Suggest("zzz", []string{"principal", "resource", "action"})
	assert.False(t, ok)
}

func TestSuggestNoCandidates(t *testing.T) {
	_, ok := suggest.Suggest("principal", nil)
	assert.False(t, ok)
}
