package usecases

// Publisher pushes coarse change notifications to subscribed UI
// instances. Satisfied by realtime.Hub.
type Publisher interface {
	Publish(table, action, id string)
}

// NopPublisher discards events; used when no hub is wired.
type NopPublisher struct{}

func (NopPublisher) Publish(string, string, string) {}
