package actors

import "fmt"

type TriggerKind uint8

const (
	GreenFlag TriggerKind = iota + 1
	MessageReceived
	KeyPressed
	ThisClicked
	StageClicked
	CloneStart
)

func (k TriggerKind) String() string {
	switch k {
	case GreenFlag:
		return "green-flag"
	case MessageReceived:
		return "message"
	case KeyPressed:
		return "key"
	case ThisClicked:
		return "this-clicked"
	case StageClicked:
		return "stage-clicked"
	case CloneStart:
		return "clone-start"
	}
	return "unknown"
}

// Trigger is the event a handler is bound to. Name carries the message for
// MessageReceived and the key for KeyPressed, and is empty otherwise.
type Trigger struct {
	Kind TriggerKind
	Name string
}

func OnGreenFlag() Trigger {
	return Trigger{Kind: GreenFlag}
}

func OnMessage(name string) Trigger {
	return Trigger{Kind: MessageReceived, Name: name}
}

func OnKey(key string) Trigger {
	return Trigger{Kind: KeyPressed, Name: key}
}

func OnThisClicked() Trigger {
	return Trigger{Kind: ThisClicked}
}

func OnStageClicked() Trigger {
	return Trigger{Kind: StageClicked}
}

func OnCloneStart() Trigger {
	return Trigger{Kind: CloneStart}
}

func (t Trigger) Matches(event Trigger) bool {
	return t.Kind == event.Kind && t.Name == event.Name
}

func (t Trigger) String() string {
	if t.Name == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Name)
}
