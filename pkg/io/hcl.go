package io

import (
	"io"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/matzehuels/laneplot/pkg/errors"
	"github.com/matzehuels/laneplot/pkg/schedule"
)

type hclDocument struct {
	Tasks []hclTask `hcl:"task,block"`
}

type hclTask struct {
	Label         string            `hcl:"label,label"`
	Lane          int               `hcl:"lane"`
	BeginAt       float64           `hcl:"begin_at"`
	FinishAt      float64           `hcl:"finish_at"`
	Transmissions []hclTransmission `hcl:"transmission,block"`
}

type hclTransmission struct {
	BeginAt  float64 `hcl:"begin_at"`
	FinishAt float64 `hcl:"finish_at"`
	DestLane int     `hcl:"dest_lane"`
}

// ReadHCL parses an HCL schedule from src. filename only appears in
// diagnostics.
func ReadHCL(src []byte, filename string) (schedule.Schedule, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, diags, "parse hcl schedule")
	}

	var doc hclDocument
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, diags, "decode hcl schedule")
	}

	s := make(schedule.Schedule, len(doc.Tasks))
	for i, t := range doc.Tasks {
		s[i] = schedule.Task{
			Lane:     t.Lane,
			Label:    t.Label,
			BeginAt:  t.BeginAt,
			FinishAt: t.FinishAt,
		}
		for _, tr := range t.Transmissions {
			s[i].Transmissions = append(s[i].Transmissions, schedule.Transmission(tr))
		}
	}
	return s, nil
}

// WriteHCL encodes s as HCL task blocks.
func WriteHCL(s schedule.Schedule, w io.Writer) error {
	doc := hclDocument{Tasks: make([]hclTask, len(s))}
	for i, t := range s {
		doc.Tasks[i] = hclTask{
			Label:    t.Label,
			Lane:     t.Lane,
			BeginAt:  t.BeginAt,
			FinishAt: t.FinishAt,
		}
		for _, tr := range t.Transmissions {
			doc.Tasks[i].Transmissions = append(doc.Tasks[i].Transmissions, hclTransmission(tr))
		}
	}

	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(&doc, f.Body())
	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write hcl schedule")
	}
	return nil
}
