package thing

// NopPresenter creates visuals that draw nothing. It is used by headless tools and the server.
type NopPresenter struct{}

func (NopPresenter) NewVisual(Thing) Visual { return nopVisual{} }

type nopVisual struct{}

func (nopVisual) Refresh()        {}
func (nopVisual) SetDeleted(bool) {}
func (nopVisual) Remove()         {}
