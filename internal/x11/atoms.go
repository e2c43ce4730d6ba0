package x11

import (
	"github.com/jezek/xgb/xproto"
)

// AtomName converts an atom to its name. Names never change for the life of
// the server, so lookups are cached.
func (c *Connection) AtomName(atom xproto.Atom) (string, error) {
	c.atomMu.Lock()
	name, ok := c.atoms[atom]
	c.atomMu.Unlock()
	if ok {
		return name, nil
	}

	reply, err := xproto.GetAtomName(c.conn, atom).Reply()
	if err != nil {
		return "", asProtocolError(err)
	}

	c.atomMu.Lock()
	c.atoms[atom] = reply.Name
	c.atomMu.Unlock()

	return reply.Name, nil
}
