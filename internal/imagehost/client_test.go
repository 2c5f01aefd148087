package imagehost

import "testing"

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "url hospedada comum",
			url:  "https://images.example.com/uploads/abc123def.jpg",
			want: "abc123def",
		},
		{
			name: "sem extensão",
			url:  "https://images.example.com/uploads/abc123def",
			want: "abc123def",
		},
		{
			name: "extensão dupla corta no primeiro ponto",
			url:  "https://images.example.com/v1/foto.min.png",
			want: "foto",
		},
		{
			name: "vazia",
			url:  "",
			want: "",
		},
		{
			name: "placeholder local",
			url:  "/assets/placeholder-aluno.png",
			want: "placeholder-aluno",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PublicIDFromURL(tt.url); got != tt.want {
				t.Errorf("PublicIDFromURL(%q) = %q, esperava %q", tt.url, got, tt.want)
			}
		})
	}
}
