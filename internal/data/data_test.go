package data

import "testing"

func TestDatabaseName(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"mongodb://localhost:27017/projectflow", "projectflow"},
		{"mongodb://localhost:27017/tracker?replicaSet=rs0", "tracker"},
		{"mongodb://localhost:27017/", "projectflow"},
		{"mongodb://localhost:27017", "projectflow"},
		{"mongodb+srv://user:pw@cluster0.example.net/prod", "prod"},
	}

	for _, tt := range tests {
		if got := databaseName(tt.uri); got != tt.want {
			t.Errorf("databaseName(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}
