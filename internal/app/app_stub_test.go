//go:build !ebiten

package app

import (
	"strings"
	"testing"
)

func TestHeadlessGameNamesBuildTag(t *testing.T) {
	err := (&Game{}).Update()
	if err == nil || !strings.Contains(err.Error(), "ebiten") {
		t.Fatalf("Update = %v, want an error naming the ebiten tag", err)
	}
	defer func() {
		if r := recover(); r == nil || !strings.Contains(r.(string), "hypercube viewer") {
			t.Fatalf("New panic = %v", r)
		}
	}()
	New(nil, 1, 0)
}
