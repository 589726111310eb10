package lister

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceSource yields ds in order, then err if set.
func sliceSource(err error, ds ...Descriptor) SourceFunc {
	return func(ctx context.Context) iter.Seq2[Descriptor, error] {
		return func(yield func(Descriptor, error) bool) {
			for _, d := range ds {
				if !yield(d, nil) {
					return
				}
			}
			if err != nil {
				yield(Descriptor{}, err)
			}
		}
	}
}

func TestRunEmpty(t *testing.T) {
	var out bytes.Buffer
	err := New(&out).Run(context.Background(), sliceSource(nil))
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestRunPrintsInOrder(t *testing.T) {
	src := sliceSource(nil,
		Descriptor{Name: "models/gemini-1.5-flash", SupportedMethods: []string{"generateContent", "countTokens"}},
		Descriptor{Name: "models/text-embedding-004", SupportedMethods: []string{"embedContent"}},
		Descriptor{Name: "models/aqa", SupportedMethods: []string{"generateAnswer"}},
	)

	var out bytes.Buffer
	require.NoError(t, New(&out).Run(context.Background(), src))

	want := "Available models:\n" +
		"Name: models/gemini-1.5-flash\nSupported methods: [generateContent countTokens]\n\n" +
		"Name: models/text-embedding-004\nSupported methods: [embedContent]\n\n" +
		"Name: models/aqa\nSupported methods: [generateAnswer]\n\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, 3, bytes.Count(out.Bytes(), []byte("Name: ")))
}

func TestRunEmptyMethods(t *testing.T) {
	var out bytes.Buffer
	err := New(&out).Run(context.Background(), sliceSource(nil, Descriptor{Name: "models/bare"}))
	require.NoError(t, err)
	assert.Equal(t, "Available models:\nName: models/bare\nSupported methods: []\n\n", out.String())
}

func TestRunFailureBeforeFirstModel(t *testing.T) {
	boom := errors.New("API key not valid")

	var out bytes.Buffer
	err := New(&out).Run(context.Background(), sliceSource(boom))
	require.ErrorIs(t, err, boom)
	assert.Empty(t, out.String())
}

func TestRunFailureMidway(t *testing.T) {
	boom := errors.New("quota exceeded")
	src := sliceSource(boom, Descriptor{Name: "models/a"})

	var out bytes.Buffer
	err := New(&out).Run(context.Background(), src)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "Available models:\nName: models/a\nSupported methods: []\n\n", out.String())
}

func TestRunIdempotent(t *testing.T) {
	src := sliceSource(nil,
		Descriptor{Name: "models/a", SupportedMethods: []string{"generateContent"}},
		Descriptor{Name: "models/b"},
	)
	l := New(&bytes.Buffer{})

	var first, second bytes.Buffer
	l.out = &first
	require.NoError(t, l.Run(context.Background(), src))
	l.out = &second
	require.NoError(t, l.Run(context.Background(), src))

	assert.Equal(t, first.String(), second.String())
}

func TestRunConsumesOnce(t *testing.T) {
	calls := 0
	src := SourceFunc(func(ctx context.Context) iter.Seq2[Descriptor, error] {
		calls++
		return sliceSource(nil, Descriptor{Name: "models/a"}).Models(ctx)
	})

	require.NoError(t, New(&bytes.Buffer{}).Run(context.Background(), src))
	assert.Equal(t, 1, calls)
}

func TestRunWithMethods(t *testing.T) {
	src := sliceSource(nil,
		Descriptor{Name: "models/chat", SupportedMethods: []string{"generateContent", "countTokens"}},
		Descriptor{Name: "models/embed", SupportedMethods: []string{"embedContent"}},
		Descriptor{Name: "models/chat-lite", SupportedMethods: []string{"generateContent"}},
	)

	var out bytes.Buffer
	require.NoError(t, New(&out, WithMethods("generateContent", "countTokens")).Run(context.Background(), src))
	assert.Equal(t, "Available models:\nName: models/chat\nSupported methods: [generateContent countTokens]\n\n", out.String())

	out.Reset()
	require.NoError(t, New(&out, WithMethods("bidiGenerateContent")).Run(context.Background(), src))
	assert.Empty(t, out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestRunWriteError(t *testing.T) {
	err := New(failingWriter{}).Run(context.Background(), sliceSource(nil, Descriptor{Name: "models/a"}))
	assert.ErrorContains(t, err, "closed pipe")
}

func TestFormatMethods(t *testing.T) {
	assert.Equal(t, "[]", FormatMethods(nil))
	assert.Equal(t, "[generateContent]", FormatMethods([]string{"generateContent"}))
}
