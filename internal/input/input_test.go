package input_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/ja-he/salonplan/internal/control/action"
	"github.com/ja-he/salonplan/internal/input"
)

func runeKey(r rune) input.Key { return input.Key{Key: tcell.KeyRune, Ch: r} }

func TestConfigKeyspecToKeys(t *testing.T) {

	t.Run("valid", func(t *testing.T) {
		cases := map[input.Keyspec][]input.Key{
			"":         {},
			"x":        {runeKey('x')},
			"+":        {runeKey('+')},
			"<c-a>":    {{Key: tcell.KeyCtrlA}},
			"<C-R>":    {{Key: tcell.KeyCtrlR}},
			"<space>":  {runeKey(' ')},
			"gg":       {runeKey('g'), runeKey('g')},
			"x<c-w>z":  {runeKey('x'), {Key: tcell.KeyCtrlW}, runeKey('z')},
			"<lt><gt>": {runeKey('<'), runeKey('>')},
		}
		for spec, expected := range cases {
			keys, err := input.ConfigKeyspecToKeys(spec)
			if err != nil {
				t.Errorf("unexpected error on valid spec '%s': %s", spec, err.Error())
				continue
			}
			if len(keys) != len(expected) {
				t.Errorf("'%s': expected %d keys, got %d", spec, len(expected), len(keys))
				continue
			}
			for i := range keys {
				if keys[i] != expected[i] {
					t.Errorf("'%s': key %d is %s", spec, i, keys[i].ToDebugString())
				}
			}
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, spec := range []input.Keyspec{"a>", "<space", "<<space>>", "<c_a>", "<nope>"} {
			if _, err := input.ConfigKeyspecToKeys(spec); err == nil {
				t.Errorf("expected error for '%s'", spec)
			}
		}
	})
}

func TestToConfigIdentifierString(t *testing.T) {
	cases := map[input.Key]string{
		runeKey('q'):                "q",
		{Key: tcell.KeyCtrlR}:     "<c-r>",
		{Key: tcell.KeyTab}:       "<tab>",
		{Key: tcell.KeyEnter}:     "<cr>",
		{Key: tcell.KeyBackspace}: "<c-bs>",
		runeKey(' '):                "<space>",
	}
	for key, expected := range cases {
		if actual := input.ToConfigIdentifierString(key); actual != expected {
			t.Errorf("expected '%s', got '%s'", expected, actual)
		}
	}
}

func TestKeyFromEvent(t *testing.T) {
	k := input.KeyFromEvent(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModShift))
	if k != runeKey('+') {
		t.Error("shift not dropped from rune:", k.ToDebugString())
	}
	k = input.KeyFromEvent(tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl))
	if k.Key != tcell.KeyCtrlR {
		t.Error("unexpected key", k.ToDebugString())
	}
}

func TestTree(t *testing.T) {
	var log []string
	record := func(s string) action.Action {
		return action.Static(s, func() { log = append(log, s) })
	}

	tree, err := input.ConstructInputTree(map[input.Keyspec]action.Action{
		"q":     record("quit"),
		"gt":    record("today"),
		"gg":    record("top"),
		"<c-r>": record("reload"),
	})
	if err != nil {
		t.Fatal("unexpected error:", err.Error())
	}

	t.Run("fresh tree", func(t *testing.T) {
		validateNewlyCreatedTree(t, input.EmptyTree())
		validateNewlyCreatedTree(t, tree)
	})

	t.Run("sequences", func(t *testing.T) {
		log = nil
		if !tree.ProcessInput(runeKey('g')) || !tree.CapturesInput() {
			t.Error("partial sequence not captured")
		}
		if !tree.ProcessInput(runeKey('t')) || tree.CapturesInput() {
			t.Error("completed sequence not applied")
		}
		if tree.ProcessInput(runeKey('x')) {
			t.Error("unbound key applied")
		}
		tree.ProcessInput(runeKey('g'))
		if tree.ProcessInput(runeKey('q')) || tree.CapturesInput() {
			t.Error("broken sequence should reset without applying")
		}
		tree.ProcessInput(input.Key{Key: tcell.KeyCtrlR})
		if len(log) != 2 || log[0] != "today" || log[1] != "reload" {
			t.Error("unexpected actions:", log)
		}
	})

	t.Run("GetHelp", func(t *testing.T) {
		help := tree.GetHelp()
		if len(help) != 4 || help["gg"] != "top" || help["<c-r>"] != "reload" {
			t.Error("unexpected help:", help)
		}
		leaf := input.NewLeaf(action.Static("x", func() {}))
		if len(leaf.GetHelp()) != 1 {
			t.Error("expected one help entry for a leaf")
		}
		if len(input.NewNode().GetHelp()) != 0 {
			t.Error("expected no help for an empty node")
		}
	})

	t.Run("Bind", func(t *testing.T) {
		if err := tree.Bind("g", record("g")); err == nil {
			t.Error("binding a prefix of bound sequences succeeded")
		}
		if err := tree.Bind("qq", record("qq")); err == nil {
			t.Error("binding below a bound sequence succeeded")
		}
		if err := tree.Bind("", record("nothing")); err == nil {
			t.Error("binding the empty sequence succeeded")
		}
		if err := tree.Bind("q", record("quit!")); err != nil {
			t.Error("rebinding failed:", err.Error())
		}
		if tree.GetHelp()["q"] != "quit!" {
			t.Error("rebinding did not replace action")
		}
	})
}

func TestOverlay(t *testing.T) {
	baseCalled, overlayCalled := 0, 0
	base, _ := input.ConstructInputTree(map[input.Keyspec]action.Action{
		"?": action.Static("help", func() { baseCalled++ }),
	})
	overlay, _ := input.ConstructInputTree(map[input.Keyspec]action.Action{
		"?": action.Static("close help", func() { overlayCalled++ }),
	})

	o := input.NewOverlay(base)
	o.ProcessInput(runeKey('?'))
	o.Apply(overlay)
	if !o.CapturesInput() || !o.Active() {
		t.Error("applied overlay does not capture input")
	}
	o.ProcessInput(runeKey('?'))
	o.Pop()
	o.ProcessInput(runeKey('?'))

	if baseCalled != 2 || overlayCalled != 1 {
		t.Errorf("base called %d times, overlay %d times", baseCalled, overlayCalled)
	}
	if o.GetHelp()["?"] != "help" {
		t.Error("overlay help should be the base's")
	}
}

func validateNewlyCreatedTree(t *testing.T, newlyCreated *input.Tree) {
	t.Helper()

	if newlyCreated.Root == nil || newlyCreated.Current == nil {
		t.Error("either root or current is nil on newly created tree:", newlyCreated.Root, ",", newlyCreated.Current)
	}
	if newlyCreated.Root != newlyCreated.Current {
		t.Error("root and current differ on newly created tree:", newlyCreated.Root, ",", newlyCreated.Current)
	}
	if newlyCreated.CapturesInput() {
		t.Error("newly created tree claims to capture input")
	}
}
