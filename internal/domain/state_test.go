package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() *AppState {
	s := NewAppState()

	launch := NewProject("Launch", "Product launch")
	launch.ID = NewStringID("p-1")
	launch.Status = "В работе"
	launch.Pinned = true
	kickoff := NewNote("Kickoff", "Agenda")
	kickoff.ID = func() *EntityID { id := NumberID(3); return &id }()
	kickoff.Steps = append(kickoff.Steps,
		Step{ID: NewStringID("s-1"), Text: "Book room"},
		Step{Text: "Send invites", Done: true},
	)
	launch.Notes = append(launch.Notes, kickoff, NewNote("Retro", ""))
	launch.Steps = append(launch.Steps, Step{ID: NewStringID("s-2"), Text: "Ship", Done: false})

	s.Projects = append(s.Projects, launch, NewProject("Backlog", ""))
	s.Settings.WindowMode = WindowBorderless
	s.Settings.AlwaysOnTop = true
	s.Settings.Language = LanguageEN
	s.Settings.ProjectStatuses = []string{"todo", "doing"}
	return s
}

func TestDecode_EmptyObjectYieldsDefaults(t *testing.T) {
	s, err := Decode([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, NewAppState(), s)
	assert.Empty(t, s.Projects)
	assert.Equal(t, "midnight", s.Settings.Theme)
	assert.True(t, s.Settings.Animations)
	assert.Equal(t, "topbar", s.Settings.ControlsLayout)
	assert.True(t, s.Settings.StatusesEnabled)
	assert.Equal(t, []string{"Новый", "В работе", "Завершен"}, s.Settings.ProjectStatuses)
	assert.Equal(t, WindowFullscreenFramed, s.Settings.WindowMode)
	assert.False(t, s.Settings.AlwaysOnTop)
	assert.Equal(t, "ru", s.Settings.Language)
}

func TestDecode_NullDocumentYieldsDefaults(t *testing.T) {
	s, err := Decode([]byte(`null`))
	require.NoError(t, err)
	assert.Equal(t, NewAppState(), s)
}

func TestRoundTrip_PreservesEverything(t *testing.T) {
	orig := sampleState()

	data, err := Encode(orig)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestRoundTrip_DefaultState(t *testing.T) {
	data, err := Encode(NewAppState())
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, NewAppState(), got)
}

func TestRoundTrip_PreservesSequenceOrder(t *testing.T) {
	s := NewAppState()
	p := NewProject("Ordered", "")
	for _, text := range []string{"c", "a", "b", "a"} {
		p.Steps = append(p.Steps, Step{Text: text})
	}
	s.Projects = append(s.Projects, p)

	data, err := Encode(s)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)

	var texts []string
	for _, st := range got.Projects[0].Steps {
		texts = append(texts, st.Text)
	}
	assert.Equal(t, []string{"c", "a", "b", "a"}, texts)
}

func TestDecode_PartialNestedFieldsDefault(t *testing.T) {
	doc := `{
		"projects": [{"name": "Only name", "notes": [{"title": "t"}]}],
		"settings": {"language": "uk", "windowMode": "windowed"}
	}`
	s, err := Decode([]byte(doc))
	require.NoError(t, err)

	require.Len(t, s.Projects, 1)
	p := s.Projects[0]
	assert.Nil(t, p.ID)
	assert.Equal(t, "Only name", p.Name)
	assert.Equal(t, "", p.Status)
	assert.NotNil(t, p.Steps)
	assert.Empty(t, p.Steps)
	require.Len(t, p.Notes, 1)
	assert.Equal(t, []Step{}, p.Notes[0].Steps)

	assert.Equal(t, "uk", s.Settings.Language)
	assert.Equal(t, WindowWindowed, s.Settings.WindowMode)
	assert.Equal(t, "midnight", s.Settings.Theme)
	assert.True(t, s.Settings.Animations)
	assert.Equal(t, DefaultProjectStatuses(), s.Settings.ProjectStatuses)
}

func TestDecode_UnknownFieldsIgnored(t *testing.T) {
	doc := `{"nextId": 9, "projects": [{"name": "x", "color": "red"}], "settings": {"fontSize": 14}}`
	s, err := Decode([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "x", s.Projects[0].Name)
}

func TestDecode_WrongShapeFails(t *testing.T) {
	cases := map[string]string{
		"corrupt":            `not json{`,
		"projects object":    `{"projects": {}}`,
		"done as string":     `{"projects": [{"steps": [{"text": "a", "done": "yes"}]}]}`,
		"bool id":            `{"projects": [{"id": true}]}`,
		"unknown windowMode": `{"settings": {"windowMode": "tiled"}}`,
		"numeric windowMode": `{"settings": {"windowMode": 2}}`,
		"statuses scalar":    `{"settings": {"projectStatuses": "a"}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestDecode_IdentifierFlexibility(t *testing.T) {
	for _, raw := range []string{`"abc"`, `42`} {
		docs := []string{
			`{"projects": [{"id": ` + raw + `}]}`,
			`{"projects": [{"notes": [{"id": ` + raw + `}]}]}`,
			`{"projects": [{"steps": [{"id": ` + raw + `}]}]}`,
		}
		for _, doc := range docs {
			_, err := Decode([]byte(doc))
			assert.NoError(t, err, doc)
		}
	}

	_, err := Decode([]byte(`{"projects": [{"notes": [{"steps": [{"id": true}]}]}]}`))
	assert.Error(t, err)
}

func TestDecode_LegacyFullscreenAlias(t *testing.T) {
	s, err := Decode([]byte(`{"settings": {"windowMode": "fullscreen"}}`))
	require.NoError(t, err)
	assert.Equal(t, WindowFullscreenFramed, s.Settings.WindowMode)
}

func TestDecode_ExplicitEmptyStatusesKept(t *testing.T) {
	s, err := Decode([]byte(`{"settings": {"projectStatuses": []}}`))
	require.NoError(t, err)
	assert.NotNil(t, s.Settings.ProjectStatuses)
	assert.Empty(t, s.Settings.ProjectStatuses)

	s, err = Decode([]byte(`{"settings": {"projectStatuses": null}}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultProjectStatuses(), s.Settings.ProjectStatuses)
}

func TestEncode_EmitsFullFieldSet(t *testing.T) {
	s := &AppState{Projects: []Project{{Name: "bare"}}}
	data, err := Encode(s)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	projects := raw["projects"].([]any)
	p := projects[0].(map[string]any)
	for _, key := range []string{"name", "description", "status", "pinned", "notes", "steps"} {
		assert.Contains(t, p, key)
	}
	assert.NotContains(t, p, "id")
	assert.Equal(t, []any{}, p["notes"])

	settings := raw["settings"].(map[string]any)
	for _, key := range []string{"theme", "animations", "controlsLayout", "statusesEnabled", "projectStatuses", "windowMode", "alwaysOnTop", "language"} {
		assert.Contains(t, settings, key)
	}
	assert.Equal(t, "fullscreen_framed", settings["windowMode"])
}

func TestEncode_IsIndented(t *testing.T) {
	data, err := Encode(NewAppState())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"projects\": []")
}

func TestEncode_InvalidWindowModeFails(t *testing.T) {
	s := NewAppState()
	s.Settings.WindowMode = WindowMode(42)
	_, err := Encode(s)
	assert.Error(t, err)
}

func TestSortedProjects_PinnedFirstThenName(t *testing.T) {
	s := NewAppState()
	s.Projects = []Project{
		NewProject("zeta", ""),
		NewProject("Alpha", ""),
		{Name: "mid", Pinned: true},
		NewProject("beta", ""),
	}
	order := s.SortedProjects()

	var names []string
	for _, i := range order {
		names = append(names, s.Projects[i].Name)
	}
	assert.Equal(t, []string{"mid", "Alpha", "beta", "zeta"}, names)
	assert.Equal(t, "zeta", s.Projects[0].Name, "stored order must not change")
}

func TestFindProject(t *testing.T) {
	s := sampleState()
	assert.Equal(t, 0, s.FindProject(StringID("p-1")))
	assert.Equal(t, -1, s.FindProject(StringID("nope")))
	assert.Equal(t, -1, s.FindProject(StringID("")), "absent IDs never match")
}
