package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethodLabel(t *testing.T) {
	for _, m := range []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"} {
		assert.Equal(t, m, MethodLabel(m))
	}
	assert.Equal(t, "other", MethodLabel("PROPFIND"))
	assert.Equal(t, "other", MethodLabel("get"))
	assert.Equal(t, "other", MethodLabel(""))
}
