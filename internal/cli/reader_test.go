package cli

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ioPipe() (*io.PipeReader, *io.PipeWriter) {
	return io.Pipe()
}

func TestNonBlockingReader_ReadLine(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedValue string
	}{
		{
			name:          "successful read",
			input:         "test input\n",
			expectedValue: "test input",
		},
		{
			name:          "read with extra whitespace",
			input:         "  test input  \n",
			expectedValue: "test input",
		},
		{
			name:          "empty line",
			input:         "\n",
			expectedValue: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewNonBlockingReader(strings.NewReader(tt.input))
			value, err := reader.ReadLine(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expectedValue, value)
		})
	}
}

func TestNonBlockingReader_EOF(t *testing.T) {
	reader := NewNonBlockingReader(strings.NewReader(""))
	_, err := reader.ReadLine(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestNonBlockingReader_Timeout(t *testing.T) {
	pr, pw := ioPipe()
	defer func() { _ = pw.Close() }()

	reader := NewNonBlockingReader(pr)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := reader.ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
	assert.Less(t, time.Since(start), time.Second)
}
