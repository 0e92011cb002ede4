package api

import (
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/xformgraph/pkg/buildinfo"
	"github.com/matzehuels/xformgraph/pkg/errors"
	"github.com/matzehuels/xformgraph/pkg/graph"
	pkgio "github.com/matzehuels/xformgraph/pkg/io"
	"github.com/matzehuels/xformgraph/pkg/render/nodelink"
	"github.com/matzehuels/xformgraph/pkg/xform"
)

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "build": buildinfo.Get()})
}

func (s *server) listTypes(w http.ResponseWriter, r *http.Request) {
	reg := s.session.Registry()
	views := make([]typeView, 0)
	for _, typ := range reg.Types() {
		info, err := reg.Describe(typ)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		views = append(views, newTypeView(info))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *server) listXforms(w http.ResponseWriter, r *http.Request) {
	var views []xformView
	_ = s.session.Do(func(g *graph.Graph) error {
		views = make([]xformView, 0, g.Len())
		for _, x := range g.Xforms() {
			views = append(views, newXformView(g, x))
		}
		return nil
	})
	writeJSON(w, http.StatusOK, views)
}

func (s *server) createXform(w http.ResponseWriter, r *http.Request) {
	var req createXformRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	var view xformView
	err := s.session.Do(func(g *graph.Graph) error {
		name := req.Name
		if name == "" {
			name = g.NextFreeNameLike(req.Type)
		}
		x, err := s.session.Registry().Make(req.Type, name, req.Config)
		if err != nil {
			return err
		}
		if err := x.Init(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "init %s", name)
		}
		if err := g.AddXform(x); err != nil {
			if rel, ok := x.(xform.Releaser); ok {
				rel.Release()
			}
			return err
		}
		view = newXformView(g, x)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *server) getXform(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var view xformView
	err := s.session.Do(func(g *graph.Graph) error {
		x, ok := g.Xform(name)
		if !ok {
			return errors.New(errors.ErrCodeNoSuchXform, "no such xform: %s", name)
		}
		view = newXformView(g, x)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *server) deleteXform(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	err := s.session.Do(func(g *graph.Graph) error {
		return g.DeleteXform(name)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) configureXform(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var values map[string]string
	if err := decodeBody(r, &values); err != nil {
		s.writeError(w, r, err)
		return
	}
	var view xformView
	err := s.session.Do(func(g *graph.Graph) error {
		x, ok := g.Xform(name)
		if !ok {
			return errors.New(errors.ErrCodeNoSuchXform, "no such xform: %s", name)
		}
		for k, v := range values {
			if err := x.Config().Parse(k, v); err != nil {
				return err
			}
		}
		g.RefreshStates()
		view = newXformView(g, x)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *server) listConnections(w http.ResponseWriter, r *http.Request) {
	var conns []pkgio.ConnectionSpec
	_ = s.session.Do(func(g *graph.Graph) error {
		conns = pkgio.Encode(g).Connections
		return nil
	})
	writeJSON(w, http.StatusOK, conns)
}

func (s *server) connect(w http.ResponseWriter, r *http.Request) {
	var c pkgio.ConnectionSpec
	if err := decodeBody(r, &c); err != nil {
		s.writeError(w, r, err)
		return
	}
	err := s.session.Do(func(g *graph.Graph) error {
		return g.AddConnection(c.FromXform, c.FromPort, c.ToXform, c.ToPort)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *server) disconnect(w http.ResponseWriter, r *http.Request) {
	in := xform.InputPort{Xform: chi.URLParam(r, "xform"), Port: chi.URLParam(r, "port")}
	err := s.session.Do(func(g *graph.Graph) error {
		return g.Disconnect(in)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) evaluate(w http.ResponseWriter, r *http.Request) {
	var rep *graph.Report
	_ = s.session.Do(func(g *graph.Graph) error {
		rep = g.Evaluate(r.Context())
		return nil
	})
	writeJSON(w, http.StatusOK, rep)
}

func (s *server) getResult(w http.ResponseWriter, r *http.Request) {
	out := xform.OutputPort{Xform: chi.URLParam(r, "xform"), Port: chi.URLParam(r, "port")}
	var res xform.Result
	err := s.session.Do(func(g *graph.Graph) error {
		var ok bool
		if res, ok = g.ResultAt(out); !ok {
			return errors.New(errors.ErrCodeNotFound, "no result at %s", out)
		}
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	tex, isTexture := res.(xform.Texture)
	if r.URL.Query().Get("format") != "png" {
		view := resultView{Xform: out.Xform, Port: out.Port, Kind: "unknown"}
		if isTexture {
			view.Kind, view.Texture = "texture", tex
		}
		writeJSON(w, http.StatusOK, view)
		return
	}
	if !isTexture {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "result at %s has no pixels", out))
		return
	}
	img, err := s.session.Textures().Resolve(tex)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeNotFound, err, "texture %d", tex.ID))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		s.logger.Error("encode png", "err", err)
	}
}

func (s *server) getGraph(w http.ResponseWriter, r *http.Request) {
	var doc *pkgio.Document
	_ = s.session.Do(func(g *graph.Graph) error {
		doc = pkgio.Encode(g)
		return nil
	})
	writeJSON(w, http.StatusOK, doc)
}

func (s *server) putGraph(w http.ResponseWriter, r *http.Request) {
	var (
		doc *pkgio.Document
		err error
	)
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		doc, err = pkgio.DecodeYAML(r.Body)
	} else {
		doc, err = pkgio.DecodeJSON(r.Body)
	}
	if err == nil {
		err = s.session.Replace(doc)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.getGraph(w, r)
}

func (s *server) dot() string {
	var dot string
	_ = s.session.Do(func(g *graph.Graph) error {
		dot = nodelink.ToDOT(g, nodelink.Options{Detailed: true})
		return nil
	})
	return dot
}

func (s *server) getDOT(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(s.dot()))
}

func (s *server) getSVG(w http.ResponseWriter, r *http.Request) {
	svg, err := nodelink.RenderSVG(s.dot())
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render svg"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}
