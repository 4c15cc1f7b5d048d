package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameVariants_CapsSurname(t *testing.T) {
	variants := NameVariants("Kristen SANTOS-GRISWOLD")

	assert.Contains(t, variants, "kristen santos-griswold")
	assert.Contains(t, variants, "kristen santos griswold")
	assert.Contains(t, variants, "santos griswold kristen")
}

func TestNameVariants_PlainName(t *testing.T) {
	variants := NameVariants("Aaron Tran")

	assert.Contains(t, variants, "aaron tran")
	assert.Contains(t, variants, "tran aaron")
}

func TestNameVariants_OrderAndUniqueness(t *testing.T) {
	variants := NameVariants("Aaron Tran")

	// The base lowercase form comes first; it wins index collisions.
	assert.Equal(t, "aaron tran", variants[0])

	seen := make(map[string]bool)
	for _, v := range variants {
		assert.False(t, seen[v], "duplicate variant %q", v)
		seen[v] = true
	}
}

func TestNameVariants_SingleToken(t *testing.T) {
	variants := NameVariants("Prince")

	assert.Equal(t, []string{"prince"}, variants)
}

func TestNameVariants_CollapsesWhitespace(t *testing.T) {
	variants := NameVariants("  Aaron   Tran ")

	assert.Equal(t, "aaron tran", variants[0])
}
