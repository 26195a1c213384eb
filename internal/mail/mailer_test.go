package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderVerification(t *testing.T) {
	html, err := RenderVerification("Jane Doe", "http://localhost:4000/api/verify/tok-123")
	require.NoError(t, err)

	assert.Contains(t, html, "Welcome, Jane Doe!")
	assert.Contains(t, html, `href="http://localhost:4000/api/verify/tok-123"`)
	assert.Contains(t, html, "Verify Email")
}

func TestRenderVerification_EscapesName(t *testing.T) {
	html, err := RenderVerification(`<script>alert(1)</script>`, "http://example.com/v")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
