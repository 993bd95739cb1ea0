package scope

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/oaserrors"
)

// LiftOptions configures Lift.
type LiftOptions struct {
	// Param is the scope parameter: its registry key and its path
	// placeholder name.
	Param string
	// Prefix is the literal segment preceding the scope placeholder
	// ("account" in "/account/{account}/projects"). May be empty.
	Prefix string
	// Registry holds the scope parameter definition. Defaults to the OAS 3
	// parameters registry.
	Registry *document.Registry
	// ServerSuffix is appended to every server URL. Defaults to
	// "<Prefix>/{<Param>}".
	ServerSuffix string
	// VariableDefault is the default value of the new server variable.
	VariableDefault string
}

func (o LiftOptions) registry() document.Registry {
	if o.Registry != nil {
		return *o.Registry
	}
	return document.ParametersOAS3
}

func (o LiftOptions) serverSuffix() string {
	if o.ServerSuffix != "" {
		return o.ServerSuffix
	}
	if o.Prefix == "" {
		return "{" + o.Param + "}"
	}
	return o.Prefix + "/{" + o.Param + "}"
}

// Lift moves the scope segment of authenticated operations into the server
// URLs. Operations whose security is an empty list keep their template and
// are pinned to the original servers; every other operation, including one
// without a security field, moves to the template without the scope segment.
func Lift(doc document.Object, opts LiftOptions) (document.Object, error) {
	out, err := lift(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("scope: lift: %w", err)
	}
	return out, nil
}

func lift(doc document.Object, opts LiftOptions) (document.Object, error) {
	if opts.Param == "" {
		return nil, oaserrors.Structuralf("", "scope parameter name is required")
	}
	reg := opts.registry()
	params, err := reg.Entries(doc)
	if err != nil {
		return nil, err
	}
	param, ok := params[opts.Param].(document.Object)
	if !ok {
		return nil, oaserrors.Structuralf(document.JoinPath(reg.String(), opts.Param), "scope parameter must exist")
	}
	servers, err := document.ArrayIn(doc, "servers")
	if err != nil {
		return nil, err
	}
	liftedServers, err := liftServers(servers, param, opts)
	if err != nil {
		return nil, err
	}

	paths, err := document.ObjectIn(doc, "paths")
	if err != nil {
		return nil, err
	}
	newPaths := make(document.Object, len(paths))
	owner := make(map[string]string, len(paths))
	put := func(key, source string, item document.Object) error {
		if prev, dup := owner[key]; dup {
			return &oaserrors.CollisionError{
				Namespace: "paths",
				Name:      key,
				Sources:   []string{prev, source},
				Message:   "two path items would share one template",
			}
		}
		owner[key] = source
		newPaths[key] = item
		return nil
	}

	for _, path := range document.SortedKeys(paths) {
		item, ok := paths[path].(document.Object)
		if !ok {
			return nil, oaserrors.Structuralf(document.JoinPath("paths", path), "expected object, found %T", paths[path])
		}
		var authMethods, noAuthMethods []string
		for method, op := range document.Operations(item) {
			if isNoAuth(op) {
				noAuthMethods = append(noAuthMethods, method)
			} else {
				authMethods = append(authMethods, method)
			}
		}

		if len(noAuthMethods) > 0 {
			noAuth := document.Without(item, authMethods...)
			noAuth = document.With(noAuth, "servers", servers)
			if err := put(path, path, noAuth); err != nil {
				return nil, err
			}
		}
		if len(authMethods) > 0 || len(noAuthMethods) == 0 {
			newPath := LiftedPath(path, opts.Param, opts.Prefix)
			auth := document.Without(item, noAuthMethods...)
			if newPath != path {
				auth = removeScopeParam(auth, reg.Ref(opts.Param), opts.Param)
			}
			if err := put(newPath, path, auth); err != nil {
				return nil, err
			}
		}
	}

	out := document.With(doc, "servers", liftedServers)
	return document.With(out, "paths", newPaths), nil
}

// LiftedPath removes the scope placeholder segment from template and
// collapses a leading "/<prefix>/" to "/".
func LiftedPath(template, param, prefix string) string {
	out := strings.Replace(template, "/{"+param+"}", "", 1)
	if prefix != "" {
		if rest, ok := strings.CutPrefix(out, "/"+prefix+"/"); ok {
			out = "/" + rest
		}
	}
	return out
}

func isNoAuth(op document.Object) bool {
	sec, ok := op["security"].(document.Array)
	return ok && len(sec) == 0
}

func liftServers(servers document.Array, param document.Object, opts LiftOptions) (document.Array, error) {
	description, _ := param["description"].(string)
	suffix := opts.serverSuffix()
	out := make(document.Array, 0, len(servers))
	for i, s := range servers {
		server, ok := s.(document.Object)
		if !ok {
			return nil, oaserrors.Structuralf(fmt.Sprintf("servers.%d", i), "expected object, found %T", s)
		}
		url, ok := server["url"].(string)
		if !ok {
			return nil, oaserrors.Structuralf(fmt.Sprintf("servers.%d.url", i), "missing server url")
		}
		if !strings.HasSuffix(url, "/") {
			url += "/"
		}
		variable := document.Object{"default": opts.VariableDefault}
		if description != "" {
			variable["description"] = description
		}
		variables := document.Object{opts.Param: variable}
		if existing, ok := server["variables"].(document.Object); ok {
			for k, v := range existing {
				variables[k] = v
			}
		}
		lifted := document.With(server, "url", url+suffix)
		out = append(out, document.With(lifted, "variables", variables))
	}
	return out, nil
}

// removeScopeParam drops references to the scope parameter, and inline
// path parameters with its name, from a path item and its operations.
// Emptied lists are removed.
func removeScopeParam(item document.Object, ref, name string) document.Object {
	out := filterParams(item, ref, name)
	for _, method := range document.HTTPMethods {
		op, ok := item[method].(document.Object)
		if !ok {
			continue
		}
		if filtered := filterParams(op, ref, name); !document.Same(filtered, op) {
			out = document.With(out, method, filtered)
		}
	}
	return out
}

func filterParams(obj document.Object, ref, name string) document.Object {
	params, ok := obj["parameters"].(document.Array)
	if !ok {
		return obj
	}
	kept := make(document.Array, 0, len(params))
	for _, p := range params {
		if isScopeParam(p, ref, name) {
			continue
		}
		kept = append(kept, p)
	}
	switch {
	case len(kept) == len(params):
		return obj
	case len(kept) == 0:
		return document.Without(obj, "parameters")
	default:
		return document.With(obj, "parameters", kept)
	}
}

func isScopeParam(p any, ref, name string) bool {
	if r, ok := document.RefOf(p); ok {
		return r == ref
	}
	param, ok := p.(document.Object)
	return ok && param["name"] == name && param["in"] == "path"
}
