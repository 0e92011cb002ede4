package api

import (
	"github.com/matzehuels/xformgraph/pkg/graph"
	"github.com/matzehuels/xformgraph/pkg/xform"
)

type propertyView struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type typeView struct {
	Type       string                       `json:"type"`
	Inputs     []xform.InputPortDescriptor  `json:"inputs"`
	Outputs    []xform.OutputPortDescriptor `json:"outputs"`
	Properties []propertyView               `json:"properties"`
}

func newTypeView(info xform.TypeInfo) typeView {
	v := typeView{Type: info.Type, Inputs: info.Inputs, Outputs: info.Outputs}
	for _, p := range info.Properties {
		v.Properties = append(v.Properties, propertyView{Name: p.Name, Type: p.Type.String()})
	}
	return v
}

type xformView struct {
	Name           string                       `json:"name"`
	Type           string                       `json:"type"`
	State          graph.State                  `json:"state"`
	EvaluationTime uint64                       `json:"evaluation_time"`
	Config         map[string]any               `json:"config"`
	Inputs         []xform.InputPortDescriptor  `json:"inputs"`
	Outputs        []xform.OutputPortDescriptor `json:"outputs"`
}

func newXformView(g *graph.Graph, x xform.Xform) xformView {
	state, _ := g.StateFor(x.Name())
	tick, _ := g.EvaluationTime(x.Name())
	return xformView{
		Name:           x.Name(),
		Type:           x.Type(),
		State:          state,
		EvaluationTime: tick,
		Config:         x.Config().Values(),
		Inputs:         x.InputPorts(),
		Outputs:        x.OutputPorts(),
	}
}

type createXformRequest struct {
	Type   string            `json:"type"`
	Name   string            `json:"name"`
	Config map[string]string `json:"config"`
}

type resultView struct {
	Xform   string `json:"xform"`
	Port    string `json:"port"`
	Kind    string `json:"kind"`
	Texture any    `json:"texture,omitempty"`
}
