package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/nasdf/chronofold"
	"github.com/nasdf/chronofold/journal"
	"github.com/nasdf/chronofold/storage"
	csync "github.com/nasdf/chronofold/sync"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run walks two replicas through a concurrent editing session: they diverge,
// exchange ops and converge. With -data the merged op log is journaled to a
// badger database and restored from it.
func run() error {
	dataDir := flag.String("data", "", "directory for a badger-backed op journal (optional)")
	flag.Parse()

	alice := "alice-" + uuid.NewString()
	bob := "bob-" + uuid.NewString()

	foldA := chronofold.New[string, rune]()
	if err := foldA.Session(alice).Extend([]rune("Hello chronfold!")...); err != nil {
		return err
	}
	foldB := foldA.Clone()

	// Alice appends a tagline while Bob fixes the typo.
	sessA := foldA.Session(alice)
	if err := sessA.Splice(15, 15, []rune(" - a data structure for versioned text")...); err != nil {
		return err
	}
	sessB := foldB.Session(bob)
	if _, err := sessB.InsertAfter(10, 'o'); err != nil {
		return err
	}

	fmt.Printf("replica A before sync: %q\n", foldA.String())
	fmt.Printf("replica B before sync: %q\n", foldB.String())

	if err := csync.Exchange(foldA, foldB); err != nil {
		return err
	}

	fmt.Printf("replica A after sync:  %q\n", foldA.String())
	fmt.Printf("replica B after sync:  %q\n", foldB.String())

	if *dataDir == "" {
		return nil
	}
	return persistAndRestore(context.Background(), *dataDir, foldA)
}

func persistAndRestore(ctx context.Context, dataDir string, fold *chronofold.Chronofold[string, rune]) error {
	store, err := storage.NewBadger(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	j := journal.New[string, rune](store)
	n, err := j.Len(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		for it := fold.AllOps(); !it.Done(); {
			if err := j.Append(ctx, it.Next()); err != nil {
				return err
			}
		}
	}

	restored := chronofold.New[string, rune]()
	if err := j.Replay(ctx, restored); err != nil {
		return err
	}
	fmt.Printf("restored from journal: %q\n", restored.String())
	return nil
}
