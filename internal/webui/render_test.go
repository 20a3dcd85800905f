package webui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"horaris.manresa.cat/internal/schedule"
	"horaris.manresa.cat/internal/selection"
	"horaris.manresa.cat/internal/timetable"
)

func parseHTML(t *testing.T, body []byte) *html.Node {
	t.Helper()
	doc, err := html.Parse(bytes.NewReader(body))
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func byID(t *testing.T, root *html.Node, id string) *html.Node {
	t.Helper()
	nodes := findAll(root, func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return ok && v == id
	})
	require.Len(t, nodes, 1, "expected exactly one element with id %q", id)
	return nodes[0]
}

func byTag(root *html.Node, tag string) []*html.Node {
	return findAll(root, func(n *html.Node) bool { return n.Data == tag })
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func renderFixture(t *testing.T, state func(*selection.Controller) selection.State, opts Options) *html.Node {
	t.Helper()
	snap := readySnapshot(t)
	body, err := RenderPage(BuildPage(testTitle, snap, state(snap.Controller), opts))
	require.NoError(t, err)
	return parseHTML(t, body)
}

func TestRenderPageLoading(t *testing.T) {
	body, err := RenderPage(BuildPage(testTitle, timetable.Snapshot{State: timetable.Loading}, selection.State{}, Options{}))
	require.NoError(t, err)
	root := parseHTML(t, body)

	loading := byID(t, root, "loading")
	role, _ := attr(loading, "role")
	live, _ := attr(loading, "aria-live")
	assert.Equal(t, "status", role)
	assert.Equal(t, "polite", live)
	assert.Equal(t, schedule.MessageLoading, text(loading))

	refresh := findAll(root, func(n *html.Node) bool {
		v, _ := attr(n, "http-equiv")
		return n.Data == "meta" && v == "refresh"
	})
	assert.Len(t, refresh, 1)

	assert.Empty(t, byTag(byID(t, root, "panels"), "section"))
	assert.Empty(t, byTag(root, "button"))
}

func TestRenderPageLandmarks(t *testing.T) {
	root := renderFixture(t, (*selection.Controller).Initial, Options{})

	htmlNode := byTag(root, "html")[0]
	lang, _ := attr(htmlNode, "lang")
	assert.Equal(t, "ca", lang)

	assert.Empty(t, text(byID(t, root, "loading")), "a rendered page clears the status region")

	pickerA := byTag(byID(t, root, "picker-mb"), "button")
	pickerB := byTag(byID(t, root, "picker-mo"), "button")
	assert.Len(t, pickerA, 3)
	assert.Len(t, pickerB, 1)

	sections := byTag(byID(t, root, "panels"), "section")
	require.Len(t, sections, 4)

	visible := 0
	for _, section := range sections {
		hidden, _ := attr(section, "aria-hidden")
		_, hasHidden := attr(section, "hidden")
		assert.Equal(t, hidden == "true", hasHidden, "hidden and aria-hidden agree")
		if hidden == "false" {
			visible++
		}

		id, _ := attr(section, "id")
		labelledBy, _ := attr(section, "aria-labelledby")
		heading := byID(t, root, labelledBy)
		assert.Equal(t, "h2", heading.Data)
		assert.True(t, strings.HasPrefix(id, "panel_"))
	}
	assert.Equal(t, 1, visible)

	for _, button := range append(pickerA, pickerB...) {
		pressed, _ := attr(button, "aria-pressed")
		controls, _ := attr(button, "aria-controls")
		name, _ := attr(button, "name")
		assert.Contains(t, []string{"true", "false"}, pressed)
		assert.Equal(t, "do", name)
		byID(t, root, controls)
	}
	pressed, _ := attr(pickerA[0], "aria-pressed")
	assert.Equal(t, "true", pressed)
}

func TestRenderPageFocusAfterActivation(t *testing.T) {
	var target selection.Key
	root := renderFixture(t, func(c *selection.Controller) selection.State {
		target = c.Keys()[3]
		return c.Transition(c.Initial(), selection.Event{Kind: selection.ActivatePanel, PanelID: target.PanelID()})
	}, Options{})

	heading := byID(t, root, target.HeadingID())
	_, autofocus := attr(heading, "autofocus")
	tabindex, _ := attr(heading, "tabindex")
	assert.True(t, autofocus)
	assert.Equal(t, "-1", tabindex)

	focused := findAll(root, func(n *html.Node) bool {
		_, ok := attr(n, "autofocus")
		return ok
	})
	assert.Len(t, focused, 1, "only one element asks for focus")

	section := byID(t, root, target.PanelID())
	hidden, _ := attr(section, "aria-hidden")
	assert.Equal(t, "false", hidden)
}

func TestRenderPageTripToggles(t *testing.T) {
	root := renderFixture(t, (*selection.Controller).Initial, Options{ExpandableTrips: true})

	toggles := findAll(root, func(n *html.Node) bool {
		v, _ := attr(n, "class")
		return n.Data == "button" && v == "trip-toggle"
	})
	require.NotEmpty(t, toggles)

	toggle := toggles[0]
	expanded, _ := attr(toggle, "aria-expanded")
	label, _ := attr(toggle, "aria-label")
	controls, _ := attr(toggle, "aria-controls")
	assert.Equal(t, "false", expanded)
	assert.Equal(t, "Sortida 06:30. Arribada 07:35. Servei E 22.", label)
	assert.Contains(t, text(toggle), "Toca per mostrar o amagar el recorregut.")

	content := byID(t, root, controls)
	_, hidden := attr(content, "hidden")
	assert.True(t, hidden)
	assert.True(t, strings.HasPrefix(text(content), "Recorregut: 06:30 MANRESA (Bases);"))
}

func TestRenderPageTable(t *testing.T) {
	root := renderFixture(t, (*selection.Controller).Initial, Options{Table: true})

	tables := findAll(root, func(n *html.Node) bool {
		v, _ := attr(n, "class")
		return n.Data == "table" && v == "timetable"
	})
	require.NotEmpty(t, tables)

	table := tables[0]
	assert.Equal(t, "Taula d'horaris E 22", text(byTag(table, "caption")[0]))

	headers := byTag(table, "th")
	for _, th := range headers {
		scope, _ := attr(th, "scope")
		assert.Contains(t, []string{"col", "row"}, scope)
	}

	rows := byTag(byTag(table, "tbody")[0], "tr")
	require.Len(t, rows, 2)
	cells := byTag(rows[1], "td")
	require.Len(t, cells, 3)
	assert.Equal(t, Placeholder, text(cells[1]), "trip 102 does not call at Sant Vicenç")
}
