package domain

// Block model
const (
	BlockMinutes   = 5
	BlocksPerDay   = 288 // 00:00-24:00
	OverflowBlocks = 6   // 30 minutes after midnight for trailing buffers
	BlocksTotal    = BlocksPerDay + OverflowBlocks

	BufferMinutes = 15
	BufferBlocks  = BufferMinutes / BlockMinutes

	RosterSlotMinutes   = 30
	BlocksPerRosterSlot = RosterSlotMinutes / BlockMinutes

	// AlternativeStepBlocks шаг поиска альтернативного времени для мастера (15 минут)
	AlternativeStepBlocks = 3

	// MaxRoomCandidates количество стартов, проверяемых до полного перебора
	MaxRoomCandidates = 4
)

// Default engine limits
const (
	DefaultMaxPartySize       = 10
	DefaultMaxDurationMinutes = 480
	DefaultWorkerPoolSize     = 8
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
