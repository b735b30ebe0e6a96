package messaging

// Sender delivers a payload to a single connection identity.
type Sender interface {
	Send(id string, data []byte)
}

// Publisher fans a payload out to a set of session members, skipping an
// optional exclude set. Delivery per member is best-effort.
type Publisher struct {
	sender Sender
}

func NewPublisher(sender Sender) *Publisher {
	return &Publisher{sender: sender}
}

func (p *Publisher) Publish(ids []string, exclude []string, data []byte) {
	excludeSet := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		excludeSet[id] = true
	}

	for _, id := range ids {
		if excludeSet[id] {
			continue
		}
		p.sender.Send(id, data)
	}
}
