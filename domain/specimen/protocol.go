package specimen

import "strings"

// BaseProtocol is the kind of mechanical test
type BaseProtocol string

const (
	BaseStack BaseProtocol = "stack"
	BaseHold  BaseProtocol = "hold"
	BaseDrop  BaseProtocol = "drop"
)

// Arrangement is the stacking geometry of a stack test
type Arrangement string

const (
	ArrangementNone Arrangement = ""
	ArrangementRect Arrangement = "rect"
	ArrangementHex  Arrangement = "hex"
)

// Protocol is one of the four measured test protocols
type Protocol string

const (
	StackRect Protocol = "stack-rect"
	StackHex  Protocol = "stack-hex"
	Hold      Protocol = "hold"
	Drop      Protocol = "drop"
)

// Protocols lists every protocol in display order.
var Protocols = []Protocol{StackRect, StackHex, Hold, Drop}

// Base returns the test kind of the protocol.
func (p Protocol) Base() BaseProtocol {
	switch p {
	case StackRect, StackHex:
		return BaseStack
	case Hold:
		return BaseHold
	case Drop:
		return BaseDrop
	default:
		return ""
	}
}

// Arrangement returns the stacking geometry, or ArrangementNone for hold and drop.
func (p Protocol) Arrangement() Arrangement {
	switch p {
	case StackRect:
		return ArrangementRect
	case StackHex:
		return ArrangementHex
	default:
		return ArrangementNone
	}
}

// Metric returns the stress reading the protocol is judged on.
func (p Protocol) Metric() Metric {
	if p == Drop {
		return MetricCompressive
	}
	return MetricTensile
}

func (p Protocol) String() string { return string(p) }

// Metric names a stress reading
type Metric string

const (
	MetricTensile     Metric = "tensile"
	MetricCompressive Metric = "compressive"
)

// FillType is the vessel content during a test
type FillType string

const (
	FillEmpty FillType = "empty"
	FillWine  FillType = "wine"
	FillOil   FillType = "oil"
)

// Source hints which input sheet a record came from
type Source string

const (
	SourceUnknown  Source = ""
	SourceStack    Source = "stack"
	SourceHoldDrop Source = "hold-drop"
)

// ParseSource maps a loader hint to a Source.
func ParseSource(v string) Source {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case string(SourceStack):
		return SourceStack
	case string(SourceHoldDrop), "hold_drop", "holddrop":
		return SourceHoldDrop
	default:
		return SourceUnknown
	}
}

// ClassifyProtocol assigns the tagged protocol for a record. The source
// hint decides the sheet; without one the lowercased label's prefix
// decides: "drop" → Drop, "hold" → Hold, anything else → Stack. Stack
// records are hexagonal when "hex" appears in the label or in a stripped
// name suffix.
func ClassifyProtocol(label string, source Source, suffixes []string) Protocol {
	l := strings.ToLower(strings.TrimSpace(label))

	var base BaseProtocol
	switch source {
	case SourceStack:
		base = BaseStack
	case SourceHoldDrop:
		base = BaseHold
		if strings.HasPrefix(l, "drop") {
			base = BaseDrop
		}
	default:
		switch {
		case strings.HasPrefix(l, "drop"):
			base = BaseDrop
		case strings.HasPrefix(l, "hold"):
			base = BaseHold
		default:
			base = BaseStack
		}
	}

	switch base {
	case BaseHold:
		return Hold
	case BaseDrop:
		return Drop
	}

	if strings.Contains(l, "hex") {
		return StackHex
	}
	for _, s := range suffixes {
		if s == "hex" {
			return StackHex
		}
	}
	return StackRect
}

// ClassifyFill picks the fill type from the label and stripped suffixes.
func ClassifyFill(label string, suffixes []string) FillType {
	l := strings.ToLower(label)
	for _, s := range suffixes {
		switch s {
		case "oil":
			return FillOil
		case "wine":
			return FillWine
		case "empty":
			return FillEmpty
		}
	}
	switch {
	case strings.Contains(l, "oil"):
		return FillOil
	case strings.Contains(l, "wine"):
		return FillWine
	default:
		return FillEmpty
	}
}
