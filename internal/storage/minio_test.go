package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectNameKeepsPrefixAndExtension(t *testing.T) {
	name := ObjectName("thumbnail", "shot.final.PNG")
	require.True(t, strings.HasPrefix(name, "thumbnail/"))
	require.True(t, strings.HasSuffix(name, ".PNG"))

	// Two uploads of the same filename never collide.
	require.NotEqual(t, name, ObjectName("thumbnail", "shot.final.PNG"))
}

func TestRemoveIgnoresForeignURLs(t *testing.T) {
	s := &Storage{bucket: "media", publicEndpoint: "http://blob"}

	// URLs that never came out of this store are a no-op, not an error.
	require.NoError(t, s.Remove(context.Background(), "https://elsewhere.example.com/x.png"))
	require.NoError(t, s.Remove(context.Background(), ""))
	require.NoError(t, s.Remove(context.Background(), "http://blob/media/"))
}
