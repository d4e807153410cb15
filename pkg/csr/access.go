package csr

import (
	"strings"

	"github.com/Manu343726/csrgen/pkg/utils"
)

// Privilege level a CSR belongs to. It is only carried for documentation.
type Privilege byte

const (
	PrivilegeNone       Privilege = 0
	PrivilegeUser       Privilege = 'U'
	PrivilegeSupervisor Privilege = 'S'
	PrivilegeHypervisor Privilege = 'H'
	PrivilegeMachine    Privilege = 'M'
	PrivilegeDebug      Privilege = 'D'
)

func (p Privilege) String() string {
	switch p {
	case PrivilegeUser:
		return "user"
	case PrivilegeSupervisor:
		return "supervisor"
	case PrivilegeHypervisor:
		return "hypervisor"
	case PrivilegeMachine:
		return "machine"
	case PrivilegeDebug:
		return "debug"
	}

	return "unspecified"
}

// Access mode of a CSR, as written in the database ("MRW", "URO", ...)
type Access struct {
	Privilege Privilege
	read      bool
	write     bool
	raw       string
}

// Parses an access string: an optional privilege letter followed by a
// combination of R, W and O ("only"). At least one of R or W is required.
func ParseAccess(s string) (Access, error) {
	raw := strings.TrimSpace(s)
	a := Access{raw: raw}
	letters := strings.ToUpper(raw)

	if len(letters) > 0 {
		switch p := Privilege(letters[0]); p {
		case PrivilegeUser, PrivilegeSupervisor, PrivilegeHypervisor, PrivilegeMachine, PrivilegeDebug:
			a.Privilege = p
			letters = letters[1:]
		}
	}

	only := false
	for _, letter := range letters {
		var seen *bool
		switch letter {
		case 'R':
			seen = &a.read
		case 'W':
			seen = &a.write
		case 'O':
			seen = &only
		default:
			return Access{}, utils.MakeError(ErrInvalidAccess, "'%v': unknown access letter '%c'", raw, letter)
		}

		if *seen {
			return Access{}, utils.MakeError(ErrInvalidAccess, "'%v': repeated access letter '%c'", raw, letter)
		}
		*seen = true
	}

	if !a.read && !a.write {
		return Access{}, utils.MakeError(ErrInvalidAccess, "'%v': neither readable nor writable", raw)
	}
	if only && a.read && a.write {
		return Access{}, utils.MakeError(ErrInvalidAccess, "'%v': 'O' needs exactly one of R or W", raw)
	}

	return a, nil
}

// Must version of ParseAccess, panics on malformed strings
func MustParseAccess(s string) Access {
	a, err := ParseAccess(s)
	if err != nil {
		panic(err)
	}

	return a
}

func (a Access) CanRead() bool {
	return a.read
}

func (a Access) CanWrite() bool {
	return a.write
}

func (a Access) String() string {
	return a.raw
}
