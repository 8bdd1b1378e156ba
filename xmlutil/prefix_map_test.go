package xmlutil

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixMap(t *testing.T) {
	pmap := PrefixMap{
		"pfx-b": "val-b",
		"pfx-a": "val-a",
		"":      "val-default",
	}

	assert.Equal(t, "val-a", pmap.Namespace("pfx-a"))
	assert.Equal(t, "val-default", pmap.Namespace(""))
	assert.Equal(t, "", pmap.Namespace("unbound"))

	// attribute form is sorted by prefix for output stability
	assert.Equal(t, []xml.Attr{
		{Name: xml.Name{Space: "xmlns", Local: ""}, Value: "val-default"},
		{Name: xml.Name{Space: "xmlns", Local: "pfx-a"}, Value: "val-a"},
		{Name: xml.Name{Space: "xmlns", Local: "pfx-b"}, Value: "val-b"},
	}, pmap.Attr())

	assert.Nil(t, PrefixMap{}.Attr())
}
