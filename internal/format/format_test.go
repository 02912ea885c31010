package format

import (
	"bytes"
	"testing"

	"github.com/jpl-au/textfinder/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "12B", humanSize(12))
	assert.Equal(t, "1.5K", humanSize(1536))
	assert.Equal(t, "2.0M", humanSize(2<<20))
}

func TestTree(t *testing.T) {
	del := int64(1)
	docs := []store.Document{
		{Path: "notes/a.txt"},
		{Path: "notes/deep/b.txt", DeletedAt: &del},
		{Path: "top"},
	}
	var buf bytes.Buffer
	Tree(&buf, docs)
	assert.Equal(t, `├── notes/
│   ├── a.txt
│   └── deep/
│       └── b.txt [deleted]
└── top
`, buf.String())
}

func TestHistoryDiff(t *testing.T) {
	docs := []store.Document{
		{Version: 2, Content: "b\n", Author: "alice", Message: "fix"},
		{Version: 1, Content: "a\n", Author: "alice"},
	}
	var buf bytes.Buffer
	HistoryDiff(&buf, docs, false)
	out := buf.String()
	assert.Contains(t, out, "=== v1 -> v2")
	assert.Contains(t, out, "Message: fix")
	assert.Contains(t, out, "- a")
	assert.Contains(t, out, "+ b")
}

func TestLong_Empty(t *testing.T) {
	var buf bytes.Buffer
	Long(&buf, nil)
	assert.Empty(t, buf.String())
}
