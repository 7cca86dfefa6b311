package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ConvertDirectory converts every GMM file directly inside root, writing each
// result next to its input. At most jobs files are converted at once. Every
// file is attempted; the first failure is returned.
func (conv *Converter) ConvertDirectory(root string, jobs int) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}

	var inputs []string
	for _, entry := range entries {
		if !entry.IsDir() && isGMMFile(entry.Name()) {
			log.Println("discovered", entry.Name())
			inputs = append(inputs, filepath.Join(root, entry.Name()))
		}
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no .gmm files in %s", root)
	}

	if jobs < 1 {
		jobs = 1
	}
	var group errgroup.Group
	group.SetLimit(jobs)
	var converted int64
	for _, inPath := range inputs {
		inPath := inPath
		group.Go(func() error {
			if err := conv.ConvertToFile(inPath, conv.OutputPath(inPath)); err != nil {
				log.Println("unable to convert:", err)
				return err
			}
			atomic.AddInt64(&converted, 1)
			return nil
		})
	}

	err = group.Wait()
	log.Printf("converted %d of %d files in %s\n", atomic.LoadInt64(&converted), len(inputs), root)
	return err
}
