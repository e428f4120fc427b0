package sqlitec

// Primary result codes returned by the SQLite C API.
//
// https://www.sqlite.org/rescode.html
const (
	ResOK         = 0
	ResError      = 1
	ResInternal   = 2
	ResPerm       = 3
	ResAbort      = 4
	ResBusy       = 5
	ResLocked     = 6
	ResNoMem      = 7
	ResReadOnly   = 8
	ResInterrupt  = 9
	ResIOErr      = 10
	ResCorrupt    = 11
	ResNotFound   = 12
	ResFull       = 13
	ResCantOpen   = 14
	ResProtocol   = 15
	ResEmpty      = 16
	ResSchema     = 17
	ResTooBig     = 18
	ResConstraint = 19
	ResMismatch   = 20
	ResMisuse     = 21
	ResNoLFS      = 22
	ResAuth       = 23
	ResFormat     = 24
	ResRange      = 25
	ResNotADB     = 26
	ResNotice     = 27
	ResWarning    = 28
	ResRow        = 100
	ResDone       = 101
)

// Storage classes reported by sqlite3_column_type for a value in the
// current result row.
//
// https://www.sqlite.org/c3ref/c_blob.html
const (
	StorageInteger = 1
	StorageFloat   = 2
	StorageText    = 3
	StorageBlob    = 4
	StorageNull    = 5
)

// Flags accepted by Open, mirroring the SQLITE_OPEN_* constants.
//
// https://www.sqlite.org/c3ref/c_open_autoproxy.html
const (
	OpenReadOnly     = 0x00000001
	OpenReadWrite    = 0x00000002
	OpenCreate       = 0x00000004
	OpenURI          = 0x00000040
	OpenMemory       = 0x00000080
	OpenNoMutex      = 0x00008000
	OpenFullMutex    = 0x00010000
	OpenSharedCache  = 0x00020000
	OpenPrivateCache = 0x00040000
)

var resCodeNames = map[int]string{
	ResOK:         "SQLITE_OK",
	ResError:      "SQLITE_ERROR",
	ResInternal:   "SQLITE_INTERNAL",
	ResPerm:       "SQLITE_PERM",
	ResAbort:      "SQLITE_ABORT",
	ResBusy:       "SQLITE_BUSY",
	ResLocked:     "SQLITE_LOCKED",
	ResNoMem:      "SQLITE_NOMEM",
	ResReadOnly:   "SQLITE_READONLY",
	ResInterrupt:  "SQLITE_INTERRUPT",
	ResIOErr:      "SQLITE_IOERR",
	ResCorrupt:    "SQLITE_CORRUPT",
	ResNotFound:   "SQLITE_NOTFOUND",
	ResFull:       "SQLITE_FULL",
	ResCantOpen:   "SQLITE_CANTOPEN",
	ResProtocol:   "SQLITE_PROTOCOL",
	ResEmpty:      "SQLITE_EMPTY",
	ResSchema:     "SQLITE_SCHEMA",
	ResTooBig:     "SQLITE_TOOBIG",
	ResConstraint: "SQLITE_CONSTRAINT",
	ResMismatch:   "SQLITE_MISMATCH",
	ResMisuse:     "SQLITE_MISUSE",
	ResNoLFS:      "SQLITE_NOLFS",
	ResAuth:       "SQLITE_AUTH",
	ResFormat:     "SQLITE_FORMAT",
	ResRange:      "SQLITE_RANGE",
	ResNotADB:     "SQLITE_NOTADB",
	ResNotice:     "SQLITE_NOTICE",
	ResWarning:    "SQLITE_WARNING",
	ResRow:        "SQLITE_ROW",
	ResDone:       "SQLITE_DONE",
}

// CodeName returns the symbolic name for a primary result code.
// Extended result codes fall back to the name of their primary code.
func CodeName(code int) string {
	if name, ok := resCodeNames[code]; ok {
		return name
	}
	if name, ok := resCodeNames[code&0xff]; ok {
		return name
	}
	return "SQLITE_UNKNOWN"
}
