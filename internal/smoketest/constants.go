package smoketest

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Fixture file names, matching the batch defaults.
const (
	CandidatesFile = "general_shortlist.csv"
	SquadFile      = "squad.csv"
)
