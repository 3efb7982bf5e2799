package pipe

import "testing"

func TestExtractResponse(t *testing.T) {
	tests := []struct {
		name     string
		buf      string
		want     string
		complete bool
	}{
		{
			name:     "incomplete without terminator",
			buf:      "line one\nline two\n",
			complete: false,
		},
		{
			name:     "terminated by blank line",
			buf:      "line one\nline two\n\n",
			want:     "line one\nline two",
			complete: true,
		},
		{
			name:     "leading blank lines are noise",
			buf:      "\n\nline one\n\n",
			want:     "line one",
			complete: true,
		},
		{
			name:     "blank line alone is not a response",
			buf:      "\n\n\n",
			complete: false,
		},
		{
			name:     "partial final line does not terminate",
			buf:      "line one\npartial",
			complete: false,
		},
		{
			name:     "crlf line endings",
			buf:      "line one\r\n\r\n",
			want:     "line one",
			complete: true,
		},
		{
			name:     "sentinel stripped",
			buf:      "[]\nBatchCommand finished: OK\n\n",
			want:     "[]",
			complete: true,
		},
		{
			name:     "sentinel only response",
			buf:      "BatchCommand finished: OK\n\n",
			want:     "",
			complete: true,
		},
		{
			name:     "empty buffer",
			buf:      "",
			complete: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractResponse([]byte(tt.buf))
			if ok != tt.complete {
				t.Fatalf("extractResponse() complete = %v, want %v", ok, tt.complete)
			}
			if got != tt.want {
				t.Fatalf("extractResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}
