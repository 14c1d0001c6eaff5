package key

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/mindease/pkg/mood"
)

func TestKeyListsEveryMood(t *testing.T) {
	var buf bytes.Buffer
	k := Key{Out: &buf}
	if err := k.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	for _, g := range mood.DefaultMoods() {
		if !strings.Contains(buf.String(), g.Noun) {
			t.Errorf("legend missing %q", g.Noun)
		}
	}
}
