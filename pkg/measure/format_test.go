package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "0.0 cm"},
		{0.123, "12.3 cm"},
		{0.999, "99.9 cm"},
		{1, "1.00 m"},
		{1.234, "1.23 m"},
		{12.5, "12.50 m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDistance(tt.meters), "meters %v", tt.meters)
	}
}

func TestFormat(t *testing.T) {
	c := NewChain()
	lone := c.Place(v(3, 3, 3), None)
	assert.Equal(t, "…", c.Format(lone))
	assert.Empty(t, c.Format(ID(100)))

	pair := line(c, 0, 0.1)
	assert.Equal(t, "» 10.0 cm", c.Format(pair[0]))
	assert.Equal(t, "10.0 cm «", c.Format(pair[1]))

	chain := line(c, 0, 0.1, 0.35, 0.5)
	assert.Equal(t, "● » 10.0 cm » 25.0 cm » 15.0 cm = 50.0 cm", c.Format(chain[0]))
	assert.Equal(t, "10.0 cm « ● » 25.0 cm » 15.0 cm = 50.0 cm", c.Format(chain[1]))
	assert.Equal(t, "10.0 cm « 25.0 cm « ● » 15.0 cm = 50.0 cm", c.Format(chain[2]))
	assert.Equal(t, "10.0 cm « 25.0 cm « 15.0 cm « ● = 50.0 cm", c.Format(chain[3]))
}
