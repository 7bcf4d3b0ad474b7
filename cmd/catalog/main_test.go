package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunFindWithoutIdentifiersFails(t *testing.T) {
	t.Setenv("VWH_API_URL", "http://127.0.0.1:1")

	assert.Equal(t, 1, run())
}
