package discord

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

// call is one REST request seen by fakeDiscord.
type call struct {
	Route string
	Body  string
}

// fakeDiscord answers REST calls from canned JSON keyed by "METHOD /path",
// with the API version prefix stripped. Unknown writes get 204, unknown
// reads get 404.
type fakeDiscord struct {
	mu     sync.Mutex
	routes map[string]string
	calls  []call
}

func newFakeDiscord(routes map[string]string) *fakeDiscord {
	if routes == nil {
		routes = map[string]string{}
	}
	return &fakeDiscord{routes: routes}
}

func routePath(path string) string {
	if i := strings.Index(path, "/api/v"); i >= 0 {
		rest := path[i+len("/api/v"):]
		if j := strings.Index(rest, "/"); j >= 0 {
			return rest[j:]
		}
	}
	return path
}

func (f *fakeDiscord) RoundTrip(r *http.Request) (*http.Response, error) {
	route := r.Method + " " + routePath(r.URL.Path)
	var body string
	if r.Body != nil {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
	}

	f.mu.Lock()
	f.calls = append(f.calls, call{Route: route, Body: body})
	resp, ok := f.routes[route]
	f.mu.Unlock()

	status := http.StatusOK
	switch {
	case ok:
	case r.Method == http.MethodGet:
		status = http.StatusNotFound
		resp = `{"message":"Unknown","code":10003}`
	default:
		status = http.StatusNoContent
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(resp)),
		Request:    r,
	}, nil
}

// Calls returns every request whose route starts with prefix.
func (f *fakeDiscord) Calls(prefix string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if strings.HasPrefix(c.Route, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// newTestBot builds a bot whose REST traffic goes to fake.
func newTestBot(t *testing.T, fake *fakeDiscord) *Bot {
	t.Helper()
	b, err := New(Config{Token: "test", AppID: "app"})
	require.NoError(t, err)
	b.Session.Client = &http.Client{Transport: fake}
	b.Session.MaxRestRetries = 0
	return b
}

func commandInteraction(name string, perms int64, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "i1",
		AppID:     "app",
		Token:     "tok",
		Type:      discordgo.InteractionApplicationCommand,
		GuildID:   "g1",
		ChannelID: "c1",
		Member: &discordgo.Member{
			User:        &discordgo.User{ID: "u1", Username: "alice"},
			Permissions: perms,
		},
		Data: discordgo.ApplicationCommandInteractionData{Name: name, Options: opts},
	}}
}

func buttonInteraction(customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "i2",
		AppID:     "app",
		Token:     "tok",
		Type:      discordgo.InteractionMessageComponent,
		GuildID:   "g1",
		ChannelID: "c1",
		Message:   &discordgo.Message{ID: "m1"},
		Member:    &discordgo.Member{User: &discordgo.User{ID: "u1", Username: "alice"}},
		Data:      discordgo.MessageComponentInteractionData{CustomID: customID},
	}}
}

type errTransport struct{}

func (errTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, io.ErrUnexpectedEOF
}

// Count returns how many requests hit exactly route.
func (f *fakeDiscord) Count(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Route == route {
			n++
		}
	}
	return n
}
