// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package flyer

import "fmt"

// Outcome describes what a merge did with the candidate product.
type Outcome string

const (
	// OutcomeAdded — the product was appended to its target placement.
	OutcomeAdded Outcome = "added"
	// OutcomeReplaced — an edit whose hierarchy keys were unchanged
	// replaced the product in place.
	OutcomeReplaced Outcome = "replaced"
	// OutcomeMoved — an edit relocated the product to a different
	// placement.
	OutcomeMoved Outcome = "moved"
	// OutcomeExists — a strict duplicate was already present; nothing was
	// inserted. This is a successful outcome, not an error.
	OutcomeExists Outcome = "exists"
	// OutcomeNone — the merge failed and the document is unchanged.
	OutcomeNone Outcome = ""
)

// Origin identifies the position of a product being edited: its hierarchy
// coordinates plus its index within the placement's product list.
type Origin struct {
	Category    string
	Subcategory string
	Placement   string
	Index       int
}

// MergeProduct folds candidate into doc and returns the resulting
// document. The input document is never mutated: work happens on a deep
// copy that is only handed back on success (copy-then-swap), so a failed
// merge cannot leave the caller's tree partially edited.
//
// With origin == nil the candidate is a brand-new product: its target
// placement is resolved, checked for a strict duplicate, and the product
// is appended. With origin set the candidate is an edit of the product at
// that position; unchanged hierarchy keys replace in place, changed keys
// move the product to the new placement. A move whose target cannot be
// resolved fails whole — the original position is kept.
func MergeProduct(doc Document, candidate Product, origin *Origin) (Document, Outcome, error) {
	if origin != nil {
		return mergeEdit(doc, candidate, *origin)
	}
	return mergeNew(doc, candidate)
}

func mergeNew(doc Document, candidate Product) (Document, Outcome, error) {
	next := doc.Clone()
	target, err := Locate(next, candidate.Category, candidate.Subcategory, candidate.Placement)
	if err != nil {
		return doc, OutcomeNone, err
	}
	if ContainsMatch(target.Products, candidate, MatchStrict) {
		return doc, OutcomeExists, nil
	}
	// Append-only: entry order is preserved, never re-sorted.
	target.Products = append(target.Products, candidate)
	return next, OutcomeAdded, nil
}

func mergeEdit(doc Document, candidate Product, origin Origin) (Document, Outcome, error) {
	next := doc.Clone()

	source, err := Locate(next, origin.Category, origin.Subcategory, origin.Placement)
	if err != nil {
		return doc, OutcomeNone, err
	}
	if origin.Index < 0 || origin.Index >= len(source.Products) {
		return doc, OutcomeNone, fmt.Errorf("origin index %d out of range for placement %q", origin.Index, origin.Placement)
	}

	unchanged := candidate.Category == origin.Category &&
		candidate.Subcategory == origin.Subcategory &&
		candidate.Placement == origin.Placement
	if unchanged {
		source.Products[origin.Index] = candidate
		return next, OutcomeReplaced, nil
	}

	// The edit moves the product. Resolve the target before splicing so an
	// unresolvable move leaves the original document untouched.
	target, err := Locate(next, candidate.Category, candidate.Subcategory, candidate.Placement)
	if err != nil {
		return doc, OutcomeNone, err
	}

	source.Products = append(source.Products[:origin.Index], source.Products[origin.Index+1:]...)
	target.Products = append(target.Products, candidate)
	return next, OutcomeMoved, nil
}

// Rebuild projects the hierarchy template with the session's products
// filled in: entries are grouped by their three-part hierarchy path and
// each template placement receives its group in entry order, or an empty
// list when none. Products whose path does not exist in the template are
// dropped — the template is authoritative for structure.
func Rebuild(template Document, products []Product) Document {
	groups := make(map[string][]Product)
	for _, p := range products {
		key := pathKey(p.Category, p.Subcategory, p.Placement)
		groups[key] = append(groups[key], p)
	}

	out := make(Document, len(template))
	for ci, cat := range template {
		c := Category{Name: cat.Name, Subcategories: make([]Subcategory, len(cat.Subcategories))}
		for si, sub := range cat.Subcategories {
			s := Subcategory{Name: sub.Name, Placements: make([]Placement, len(sub.Placements))}
			for pi, plc := range sub.Placements {
				key := pathKey(cat.Name, sub.Name, plc.Name)
				prods := make([]Product, len(groups[key]))
				copy(prods, groups[key])
				s.Placements[pi] = Placement{Name: plc.Name, Products: prods}
			}
			c.Subcategories[si] = s
		}
		out[ci] = c
	}
	return out
}

// MergeIntoLoaded combines a previously loaded document with a rebuilt
// session document: for every placement of the loaded tree, the matching
// rebuilt placement's products are appended after the loaded ones. The
// loaded tree's structure wins; rebuilt placements with no counterpart in
// the loaded document are ignored. Neither input is mutated.
func MergeIntoLoaded(loaded, rebuilt Document) Document {
	idx := BuildIndex(rebuilt)

	out := loaded.Clone()
	for ci := range out {
		cat := &out[ci]
		for si := range cat.Subcategories {
			sub := &cat.Subcategories[si]
			for pi := range sub.Placements {
				plc := &sub.Placements[pi]
				fresh := idx.Lookup(cat.Name, sub.Name, plc.Name)
				if fresh == nil || len(fresh.Products) == 0 {
					continue
				}
				plc.Products = append(plc.Products, fresh.Products...)
			}
		}
	}
	return out
}
