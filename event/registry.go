package event

var (
	nameToType = make(map[string]EventType)
	typeToName = make(map[EventType]string)
)

// RegisterType maps a wire name to an EventType
func RegisterType(name string, et EventType) {
	nameToType[name] = et
	typeToName[et] = name
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the wire name for an EventType, "" if unregistered
func GetEventName(et EventType) string {
	return typeToName[et]
}

func init() {
	RegisterType("board_changed", EventBoardChanged)
	RegisterType("drop_swapped", EventDropSwapped)
	RegisterType("drop_pushed", EventDropPushed)
	RegisterType("mode_changed", EventModeChanged)
	RegisterType("board_resized", EventBoardResized)
	RegisterType("cascade_start", EventCascadeStart)
	RegisterType("group_fade", EventGroupFade)
	RegisterType("drop_fall", EventDropFall)
	RegisterType("cascade_round", EventCascadeRound)
	RegisterType("cascade_complete", EventCascadeComplete)
}
