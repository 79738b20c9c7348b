package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/milk9111/marblebounce/codec"
	"github.com/milk9111/marblebounce/tmx"
)

func main() {
	in := flag.String("in", "", "Tiled .tmx map to convert")
	out := flag.String("out", "", "output level file (stdout when empty)")
	ppu := flag.Float64("ppu", 100, "map pixels per board unit")
	group := flag.String("group", "", "only import this object group")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: tmxconv -in map.tmx [-out level.xml] [-ppu 100] [-group name]")
		os.Exit(2)
	}

	abs, err := filepath.Abs(*in)
	if err != nil {
		log.Fatalf("resolve %s: %v", *in, err)
	}
	l, err := tmx.Load(os.DirFS(filepath.Dir(abs)), filepath.Base(abs), tmx.Options{
		PixelsPerUnit: *ppu,
		Group:         *group,
	})
	if err != nil {
		log.Fatalf("convert: %v", err)
	}

	doc := codec.Encode(l)
	if *out == "" {
		fmt.Print(doc)
		return
	}
	if err := os.WriteFile(*out, []byte(doc), 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Printf("wrote %s (%d things)", *out, len(l.Live()))
}
