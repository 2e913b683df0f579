package view

import (
	"bytes"
	"testing"
	"time"

	"github.com/deppfellow/maska/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_MembersIndex(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	joined := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	m := model.NewMember("Jane", "Doe", "PA123457", "American", joined, joined.AddDate(1, 0, 0), 889940)
	m.ID = 2

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, MembersIndex, map[string]any{"Members": []model.Member{m}}, nil))

	html := buf.String()
	assert.Contains(t, html, "<title>Members · Maska</title>")
	assert.Contains(t, html, "<td>PA123457</td>")
	assert.Contains(t, html, "<td>2025-03-01</td>")
	assert.Contains(t, html, "<td>889940</td>")
}

func TestRenderer_EmptyAndUnknown(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, MembersIndex, map[string]any{"Members": nil}, nil))
	assert.Contains(t, buf.String(), "No members registered.")

	assert.Error(t, r.Render(&buf, "members/missing.html", nil, nil))
}
