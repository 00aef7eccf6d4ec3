// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package petri

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// PNMLNamespace is the XML namespace of PNML documents. Elements with no
// namespace are also accepted.
const PNMLNamespace = "http://www.pnml.org/version-2009/grammar/pnml"

type pnmlText struct {
	Text string `xml:"text"`
}

type pnmlPlace struct {
	ID             string    `xml:"id,attr"`
	Name           *pnmlText `xml:"name"`
	InitialMarking *pnmlText `xml:"initialMarking"`
}

type pnmlTransition struct {
	ID   string    `xml:"id,attr"`
	Name *pnmlText `xml:"name"`
}

type pnmlArc struct {
	ID          string    `xml:"id,attr"`
	Source      string    `xml:"source,attr"`
	Target      string    `xml:"target,attr"`
	Inscription *pnmlText `xml:"inscription"`
}

func (t *pnmlText) value() string {
	if t == nil {
		return ""
	}
	return strings.TrimSpace(t.Text)
}

// ReadPNML reads a P/T net in PNML format. Places, transitions and arcs are
// collected anywhere in the document, whatever the nesting of pages. The
// initial marking of a place must be 0 (or missing) or 1, and arc
// inscriptions must be 1 (or missing), otherwise we return an error wrapping
// ErrUnsafe.
func ReadPNML(r io.Reader) (*Net, error) {
	var places []Place
	var transitions []Transition
	var arcs []Arc
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error parsing PNML: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Space != "" && se.Name.Space != PNMLNamespace {
			continue
		}
		switch se.Name.Local {
		case "place":
			var p pnmlPlace
			if err := dec.DecodeElement(&p, &se); err != nil {
				return nil, fmt.Errorf("error parsing PNML place: %w", err)
			}
			tokens, err := count(p.InitialMarking.value())
			if err != nil {
				return nil, fmt.Errorf("initial marking of place %q: %w", p.ID, err)
			}
			places = append(places, Place{ID: p.ID, Name: p.Name.value(), Initial: tokens == 1})
		case "transition":
			var t pnmlTransition
			if err := dec.DecodeElement(&t, &se); err != nil {
				return nil, fmt.Errorf("error parsing PNML transition: %w", err)
			}
			transitions = append(transitions, Transition{ID: t.ID, Name: t.Name.value()})
		case "arc":
			var a pnmlArc
			if err := dec.DecodeElement(&a, &se); err != nil {
				return nil, fmt.Errorf("error parsing PNML arc: %w", err)
			}
			if s := a.Inscription.value(); s != "" {
				if w, err := strconv.Atoi(s); err != nil || w != 1 {
					return nil, fmt.Errorf("inscription %q of arc %s -> %s: %w", s, a.Source, a.Target, ErrUnsafe)
				}
			}
			arcs = append(arcs, Arc{Source: a.Source, Target: a.Target})
		}
	}
	return New(places, transitions, arcs)
}

// count parses the number of tokens in an initial marking.
func count(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad number of tokens %q: %w", s, err)
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("%d tokens: %w", v, ErrUnsafe)
	}
	return v, nil
}

// LoadPNML reads a net from a PNML file.
func LoadPNML(filename string) (*Net, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	n, err := ReadPNML(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return n, nil
}
