package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slidelink/internal/storage"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change preferences",
	Long: `Show stored preferences, or change one.

Preferences are read once when a board opens.

Examples:
  slidelink prefs
  slidelink prefs random-colors on
  slidelink prefs random-colors reset`,
	Args: cobra.NoArgs,
	Run:  runPrefsShow,
}

var randomColorsCmd = &cobra.Command{
	Use:       "random-colors [on|off|reset]",
	Short:     "Shuffle piece colors when a board opens",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off", "reset"},
	Run:       runRandomColors,
}

func init() {
	prefsCmd.AddCommand(randomColorsCmd)
}

func openStoreApp() *app {
	a, err := newApp()
	if err != nil {
		fail("%v", err)
	}
	if a.store == nil {
		fail("no database at %s", a.dbPath)
	}
	return a
}

func runPrefsShow(_ *cobra.Command, _ []string) {
	a := openStoreApp()
	defer a.close()
	printRandomColors(a.store)
}

func runRandomColors(_ *cobra.Command, args []string) {
	a := openStoreApp()
	defer a.close()

	if len(args) == 0 {
		printRandomColors(a.store)
		return
	}

	var err error
	switch args[0] {
	case "on":
		err = a.store.SetBool(storage.KeyRandomColors, true)
	case "off":
		err = a.store.SetBool(storage.KeyRandomColors, false)
	case "reset":
		err = a.store.DeletePreference(storage.KeyRandomColors)
	default:
		a.close()
		fail("expected on, off or reset, got %q", args[0])
	}
	if err != nil {
		a.close()
		fail("%v", err)
	}
	printRandomColors(a.store)
}

func printRandomColors(store *storage.Store) {
	v, found, err := store.GetBool(storage.KeyRandomColors)
	if err != nil {
		fmt.Printf("random-colors: unreadable (%v)\n", err)
		return
	}
	state := "off"
	if v {
		state = "on"
	}
	if !found {
		state += " (default)"
	}
	fmt.Printf("random-colors: %s\n", state)
}
