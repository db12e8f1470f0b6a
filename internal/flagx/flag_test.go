package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgsKeepsAllowedPairs(t *testing.T) {
	args := []string{"-a", "http://x", "-unknown", "zzz", "-t", "30"}
	got := FilterArgs(args, []string{"-a", "-t"})
	require.Equal(t, []string{"-a", "http://x", "-t", "30"}, got)
}

func TestFilterArgsEqualsForm(t *testing.T) {
	args := []string{"--a=http://x", "--other=1", "-t=5"}
	got := FilterArgs(args, []string{"--a", "-t"})
	require.Equal(t, []string{"--a=http://x", "-t=5"}, got)
}

func TestFilterArgsFlagWithoutValue(t *testing.T) {
	args := []string{"-a", "-t", "30"}
	got := FilterArgs(args, []string{"-a", "-t"})
	require.Equal(t, []string{"-a", "-t", "30"}, got)
}

func TestJsonConfigFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short flag", []string{"cmd", "-c", "conf.json"}, "conf.json"},
		{"long flag", []string{"cmd", "-config", "other.json"}, "other.json"},
		{"absent", []string{"cmd", "-a", "http://x"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := os.Args
			defer func() { os.Args = orig }()
			os.Args = tt.args
			require.Equal(t, tt.want, JsonConfigFlags())
		})
	}
}
