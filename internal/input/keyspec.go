package input

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// namedKeys are the identifiers usable between '<' and '>' in a Keyspec, in
// addition to the control keys '<c-a>' through '<c-z>'.
var namedKeys = map[string]Key{
	"space": {Key: tcell.KeyRune, Ch: ' '},
	"lt":    {Key: tcell.KeyRune, Ch: '<'},
	"gt":    {Key: tcell.KeyRune, Ch: '>'},
	"cr":    {Key: tcell.KeyEnter},
	"esc":   {Key: tcell.KeyESC},
	"tab":   {Key: tcell.KeyTab},
	"del":   {Key: tcell.KeyDelete},
	"bs":    {Key: tcell.KeyBackspace2},
	"left":  {Key: tcell.KeyLeft},
	"right": {Key: tcell.KeyRight},
	"up":    {Key: tcell.KeyUp},
	"down":  {Key: tcell.KeyDown},
	"pgup":  {Key: tcell.KeyPgUp},
	"pgdn":  {Key: tcell.KeyPgDn},
	"home":  {Key: tcell.KeyHome},
	"end":   {Key: tcell.KeyEnd},

	"c-space": {Key: tcell.KeyCtrlSpace},
	"c-bs":    {Key: tcell.KeyBackspace},
}

var (
	specialKeys    = map[string]Key{}
	keyIdentifiers = map[Key]string{}
)

func init() {
	for r := 'a'; r <= 'z'; r++ {
		identifier, key := "c-"+string(r), Key{Key: tcell.KeyCtrlA + tcell.Key(r-'a')}
		specialKeys[identifier] = key
		keyIdentifiers[key] = identifier
	}
	// some control keys are the same as named ones (<c-i> is <tab>), in which
	// case the name is preferred
	for identifier, key := range namedKeys {
		specialKeys[identifier] = key
		keyIdentifiers[key] = identifier
	}
}

// ConfigKeyspecToKeys converts full key sequence specification strings (e.g.
// "<space>qw" meaning the SPACE key, then the Q key, then the W key) to the
// appropriate sequence of Keys (or an error, if invalid).
func ConfigKeyspecToKeys(spec Keyspec) ([]Key, error) {
	result := make([]Key, 0, len(spec))

	var special *strings.Builder
	for pos, r := range string(spec) {
		switch {
		case r == '<' && special == nil:
			special = &strings.Builder{}
		case r == '<':
			return nil, fmt.Errorf("illegal second opening special context ('<') before previous is closed (pos %d)", pos)
		case r == '>' && special != nil:
			key, err := KeyIdentifierToKey(special.String())
			if err != nil {
				return nil, fmt.Errorf("error mapping identifier '<%s>' to key (%w)", special.String(), err)
			}
			result = append(result, key)
			special = nil
		case r == '>':
			return nil, fmt.Errorf("illegal closing of special context ('>') while none open (pos %d)", pos)
		case special != nil:
			if !unicode.IsLetter(r) && r != '-' {
				return nil, fmt.Errorf("illegal character '%c' in special context (pos %d)", r, pos)
			}
			special.WriteRune(r)
		default:
			result = append(result, Key{Key: tcell.KeyRune, Ch: r})
		}
	}
	if special != nil {
		return nil, fmt.Errorf("special context ('<') not closed at end of '%s'", spec)
	}

	return result, nil
}

// KeyIdentifierToKey converts the given special identifier to the appropriate
// key (or an error, if invalid).
func KeyIdentifierToKey(identifier string) (Key, error) {
	key, ok := specialKeys[strings.ToLower(identifier)]
	if !ok {
		return Key{}, fmt.Errorf("no mapping present for identifier '%s'", identifier)
	}
	return key, nil
}

// ToConfigIdentifierString converts the given key to its Keyspec notation.
func ToConfigIdentifierString(k Key) string {
	if identifier, ok := keyIdentifiers[k]; ok {
		return "<" + identifier + ">"
	}
	if k.Key == tcell.KeyRune {
		return string(k.Ch)
	}
	return "<" + strings.ToLower(tcell.KeyNames[k.Key]) + ">"
}
