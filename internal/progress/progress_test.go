package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_SilentWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewWriter(&buf, "Importing", 10)
	for range 10 {
		p.Increment()
	}
	p.Done()

	assert.Equal(t, 10, p.Current())
	assert.Empty(t, buf.String())
}
