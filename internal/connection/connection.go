package connection

type Member struct {
	Name    string
	VV      int    // version
	MM      int    // modification
	Created string // YYYY/MM/DD
	Changed string // YYYY/MM/DD HH:MM
	Size    int
	Init    int
	Mod     int
	User    string
}

// Catalog browses datasets and PDS members on the mainframe.
type Catalog interface {
	Close() error
	ListDatasets(hlq string) ([]string, error)
	ListMembers(dataset string) ([]Member, error)
}
