package item

// Variant is the kind-specific payload of an Item.
type Variant interface {
	Kind() Kind
}

type Book struct {
	Author string
	ISBN   string
}

func (Book) Kind() Kind { return BookKind }

type Album struct {
	Artist string
	Etc    string
}

func (Album) Kind() Kind { return AlbumKind }

type Movie struct {
	Director string
	Actor    string
}

func (Movie) Kind() Kind { return MovieKind }
