package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "users/u1/file.pdf", want: "users/u1/file.pdf"},
		{name: "simple prefix", prefix: "artifacts", key: "users/u1/file.pdf", want: "artifacts/users/u1/file.pdf"},
		{name: "leading slash key", prefix: "artifacts", key: "/users/u1/file.pdf", want: "artifacts/users/u1/file.pdf"},
		{name: "empty key", prefix: "artifacts", key: "", want: "artifacts"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := &Store{prefix: tt.prefix}
			if got := s.applyPrefix(tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
