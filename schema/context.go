package schema

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Context holds the modules an application has loaded. It is built once
// and treated as read-only by the data tree codecs; a single Context may
// back any number of data trees concurrently.
type Context struct {
	modules []*Module
	log     logrus.FieldLogger
}

// Option is a Context option function
type Option func(*Context)

// WithLogger sets the sink for advisory messages, such as warnings
// about dropped attributes.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Context) { c.log = log }
}

// NewContext returns an empty Context.
func NewContext(opts ...Option) *Context {
	c := &Context{}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		l := logrus.New()
		l.Out = io.Discard
		c.log = l
	}
	return c
}

// Logger returns the context's advisory message sink.
func (c *Context) Logger() logrus.FieldLogger { return c.log }

// AddModule registers a module with the context. The module's name and
// namespace must both be unique within the context.
func (c *Context) AddModule(m *Module) error {
	for _, have := range c.modules {
		if have.Name == m.Name {
			return errors.Errorf("module %q already loaded", m.Name)
		}
		if have.Namespace == m.Namespace {
			return errors.Errorf("namespace %q already registered to module %q",
				m.Namespace, have.Name)
		}
	}
	c.modules = append(c.modules, m)
	return nil
}

// MustAddModule is AddModule, panicking on error. Intended for
// program-start schema assembly.
func (c *Context) MustAddModule(m *Module) *Module {
	if err := c.AddModule(m); err != nil {
		panic(err)
	}
	return m
}

// Modules returns the loaded modules in load order.
func (c *Context) Modules() []*Module { return c.modules }

// ModuleByNamespace returns the module registered for the namespace
// URI, or nil.
func (c *Context) ModuleByNamespace(ns string) *Module {
	for _, m := range c.modules {
		if m.Namespace == ns {
			return m
		}
	}
	return nil
}

// ModuleByName returns the named module, or nil.
func (c *Context) ModuleByName(name string) *Module {
	for _, m := range c.modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Identity returns the named identity from the named module, or nil.
func (c *Context) Identity(moduleName, name string) *Identity {
	m := c.ModuleByName(moduleName)
	if m == nil {
		return nil
	}
	for _, ident := range m.Identities {
		if ident.Name == name {
			return ident
		}
	}
	return nil
}

// FeatureEnabled reports whether the named module defines the named
// feature.
func (c *Context) FeatureEnabled(moduleName, feature string) bool {
	m := c.ModuleByName(moduleName)
	if m == nil {
		return false
	}
	for _, f := range m.Features {
		if f == feature {
			return true
		}
	}
	return false
}
