package types

// ComponentMetadata defines the essential identifying information for components within the system.
// It is attached to every log line a component emits so frames can be traced back to the codec
// instance that produced them.
type ComponentMetadata struct {
	ID   string // Unique identifier for the component.
	Type string // Type of the component, e.g. "FRAME_CODEC".
	Name string // Human-readable name for the component.
}

// Option defines a configuration option function applicable to any component T. This generic approach
// allows for flexible configuration mechanisms across different types of components.
type Option[T any] func(T)
