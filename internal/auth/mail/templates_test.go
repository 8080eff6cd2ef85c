package mail

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderCodeTemplates(t *testing.T) {
	for _, name := range []string{"sign_up_code.html", "find_password_code.html"} {
		body, err := renderCode(name, "482913", 5)
		require.NoError(t, err, name)
		require.Contains(t, body, "482913")
		require.Contains(t, body, "5 minutes")
	}
}

func TestRenderCodeEscapesInput(t *testing.T) {
	body, err := renderCode("sign_up_code.html", "<script>", 5)
	require.NoError(t, err)
	require.NotContains(t, body, "<script>")
}
