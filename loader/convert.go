package loader

import (
	"fmt"

	"molang/ast"
)

func pos(file string, p yamlPos) ast.Position {
	at := ast.Pos{Line: p.Line, Col: p.Col}
	return ast.Position{File: file, Min: at, Max: at}
}

func convertTy(file string, t *yamlTy) (ast.Ty, error) {
	if t == nil {
		return nil, fmt.Errorf("loader: missing type")
	}
	switch t.Kind {
	case "int", "float", "bool", "short", "string", "void":
		return ast.TyPrim{Kind: ast.Prim(t.Kind)}, nil
	case "path":
		if t.Path == nil {
			return nil, fmt.Errorf("loader: path type missing path")
		}
		return ast.TyPath{Path: t.Path.toAST()}, nil
	case "class":
		if t.Path == nil {
			return nil, fmt.Errorf("loader: class type missing path")
		}
		return ast.TyClass{Path: t.Path.toAST()}, nil
	case "func":
		params := make([]ast.Ty, len(t.Params))
		for i := range t.Params {
			p, err := convertTy(file, &t.Params[i])
			if err != nil {
				return nil, err
			}
			params[i] = p
		}
		ret, err := convertTy(file, t.Ret)
		if err != nil {
			return nil, err
		}
		conv := ast.Normal
		if t.Conv == "vararg" {
			conv = ast.VarArgs
		}
		return ast.TyFunc{Params: params, Ret: ret, Conv: conv}, nil
	case "tuple":
		elems := make([]ast.Ty, len(t.Elems))
		for i := range t.Elems {
			e, err := convertTy(file, &t.Elems[i])
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return ast.TyTuple{Elems: elems}, nil
	default:
		return nil, fmt.Errorf("loader: unknown type kind %q", t.Kind)
	}
}

func convertConst(c *yamlConst) (ast.Const, error) {
	if c == nil {
		return nil, fmt.Errorf("loader: missing const")
	}
	switch c.Kind {
	case "int":
		return ast.ConstInt{Value: c.Int}, nil
	case "float":
		return ast.ConstFloat{Value: c.Float}, nil
	case "string":
		return ast.ConstString{Value: c.Str}, nil
	case "bool":
		return ast.ConstBool{Value: c.Bool}, nil
	case "null":
		return ast.ConstNull{}, nil
	default:
		return nil, fmt.Errorf("loader: unknown const kind %q", c.Kind)
	}
}

func convertVariability(v string) ast.Variability {
	if v == "var" {
		return ast.Variable
	}
	return ast.Constant
}

func convertExpr(file string, e *yamlExpr) (ast.Expr, error) {
	if e == nil {
		return nil, fmt.Errorf("loader: missing expr")
	}
	at := pos(file, e.Pos)
	base := ast.ExprBase{At: at}

	switch e.Kind {
	case "this":
		return ast.This{ExprBase: base}, nil
	case "super":
		return ast.Super{ExprBase: base}, nil
	case "const":
		v, err := convertConst(e.Value)
		if err != nil {
			return nil, err
		}
		return ast.ConstExpr{ExprBase: base, Value: v}, nil
	case "ident":
		return ast.Ident{ExprBase: base, Name: e.Name}, nil
	case "field":
		obj, err := convertExpr(file, e.Obj)
		if err != nil {
			return nil, err
		}
		return ast.Field{ExprBase: base, Obj: obj, Name: e.Name}, nil
	case "index":
		obj, err := convertExpr(file, e.Obj)
		if err != nil {
			return nil, err
		}
		idx, err := convertExpr(file, e.Idx)
		if err != nil {
			return nil, err
		}
		return ast.ArrayIndex{ExprBase: base, Obj: obj, Idx: idx}, nil
	case "binop":
		a, err := convertExpr(file, e.A)
		if err != nil {
			return nil, err
		}
		b, err := convertExpr(file, e.B)
		if err != nil {
			return nil, err
		}
		return ast.BinOp{ExprBase: base, Op: e.Op, A: a, B: b}, nil
	case "unop":
		a, err := convertExpr(file, e.A)
		if err != nil {
			return nil, err
		}
		return ast.UnOp{ExprBase: base, Op: e.Op, A: a}, nil
	case "block":
		exprs, err := convertExprs(file, e.Exprs)
		if err != nil {
			return nil, err
		}
		return ast.Block{ExprBase: base, Exprs: exprs}, nil
	case "call":
		callee, err := convertExpr(file, e.Callee)
		if err != nil {
			return nil, err
		}
		args, err := convertExprs(file, e.Args)
		if err != nil {
			return nil, err
		}
		return ast.Call{ExprBase: base, Callee: callee, Args: args}, nil
	case "paren":
		inner, err := convertExpr(file, e.E)
		if err != nil {
			return nil, err
		}
		return ast.Paren{ExprBase: base, E: inner}, nil
	case "if":
		cond, err := convertExpr(file, e.Cond)
		if err != nil {
			return nil, err
		}
		then, err := convertExpr(file, e.Then)
		if err != nil {
			return nil, err
		}
		var els ast.Expr
		if e.Else != nil {
			els, err = convertExpr(file, e.Else)
			if err != nil {
				return nil, err
			}
		}
		return ast.If{ExprBase: base, Cond: cond, Then: then, Else: els}, nil
	case "while":
		cond, err := convertExpr(file, e.Cond)
		if err != nil {
			return nil, err
		}
		body, err := convertExpr(file, e.Body)
		if err != nil {
			return nil, err
		}
		return ast.While{ExprBase: base, Cond: cond, Body: body}, nil
	case "var":
		init, err := convertExpr(file, e.Init)
		if err != nil {
			return nil, err
		}
		var ty ast.Ty
		if e.Type != nil {
			ty, err = convertTy(file, e.Type)
			if err != nil {
				return nil, err
			}
		}
		return ast.Var{ExprBase: base, Variability: convertVariability(e.Variability), Type: ty, Name: e.Name, Init: init}, nil
	case "new":
		if e.Path == nil {
			return nil, fmt.Errorf("loader: new expr missing path")
		}
		args, err := convertExprs(file, e.Args)
		if err != nil {
			return nil, err
		}
		return ast.New{ExprBase: base, Path: e.Path.toAST(), Args: args}, nil
	case "tuple":
		elems, err := convertExprs(file, e.Exprs)
		if err != nil {
			return nil, err
		}
		return ast.TupleExpr{ExprBase: base, Elems: elems}, nil
	case "cast":
		inner, err := convertExpr(file, e.E)
		if err != nil {
			return nil, err
		}
		ty, err := convertTy(file, e.Type)
		if err != nil {
			return nil, err
		}
		return ast.Cast{ExprBase: base, E: inner, Type: ty}, nil
	case "break":
		return ast.Break{ExprBase: base}, nil
	case "continue":
		return ast.Continue{ExprBase: base}, nil
	case "return":
		var val ast.Expr
		if e.Init != nil {
			v, err := convertExpr(file, e.Init)
			if err != nil {
				return nil, err
			}
			val = v
		}
		return ast.Return{ExprBase: base, Value: val}, nil
	default:
		return nil, fmt.Errorf("loader: unknown expr kind %q", e.Kind)
	}
}

func convertExprs(file string, es []yamlExpr) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(es))
	for i := range es {
		e, err := convertExpr(file, &es[i])
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func convertParams(file string, ps []yamlParam) ([]ast.Param, error) {
	out := make([]ast.Param, len(ps))
	for i, p := range ps {
		ty, err := convertTy(file, &p.Type)
		if err != nil {
			return nil, fmt.Errorf("loader: param %q: %w", p.Name, err)
		}
		out[i] = ast.Param{Name: p.Name, Type: ty}
	}
	return out, nil
}

func convertMods(mods []string) ast.ModSet {
	out := make(ast.ModSet, len(mods))
	for _, m := range mods {
		out[ast.MemberMod(m)] = true
	}
	return out
}

func convertAtts(atts map[string]yamlConst) (map[string]ast.Const, error) {
	if len(atts) == 0 {
		return nil, nil
	}
	out := make(map[string]ast.Const, len(atts))
	for name, c := range atts {
		v, err := convertConst(&c)
		if err != nil {
			return nil, fmt.Errorf("loader: attribute %q: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}

func convertMember(file string, m yamlMember) (ast.MemberDef, error) {
	at := pos(file, m.Pos)
	atts, err := convertAtts(m.Atts)
	if err != nil {
		return ast.MemberDef{}, err
	}

	var kind ast.MemberKind
	switch m.Kind {
	case "var":
		var ty ast.Ty
		if m.Type != nil {
			ty, err = convertTy(file, m.Type)
			if err != nil {
				return ast.MemberDef{}, err
			}
		}
		var init ast.Expr
		if m.Init != nil {
			init, err = convertExpr(file, m.Init)
			if err != nil {
				return ast.MemberDef{}, err
			}
		}
		kind = ast.MVar{Variability: convertVariability(m.Variability), Type: ty, Init: init}
	case "func":
		params, err := convertParams(file, m.Params)
		if err != nil {
			return ast.MemberDef{}, err
		}
		var ret ast.Ty = ast.VoidTy
		if m.Ret != nil {
			ret, err = convertTy(file, m.Ret)
			if err != nil {
				return ast.MemberDef{}, err
			}
		}
		var body *ast.Block
		if m.Body != nil {
			b, err := convertExpr(file, m.Body)
			if err != nil {
				return ast.MemberDef{}, err
			}
			blk, ok := b.(ast.Block)
			if !ok {
				return ast.MemberDef{}, fmt.Errorf("loader: func %q body must be a block", m.Name)
			}
			body = &blk
		}
		kind = ast.MFunc{Params: params, Ret: ret, Body: body}
	case "constr":
		params, err := convertParams(file, m.Params)
		if err != nil {
			return ast.MemberDef{}, err
		}
		var body *ast.Block
		if m.Body != nil {
			b, err := convertExpr(file, m.Body)
			if err != nil {
				return ast.MemberDef{}, err
			}
			blk, ok := b.(ast.Block)
			if !ok {
				return ast.MemberDef{}, fmt.Errorf("loader: constructor body must be a block")
			}
			body = &blk
		}
		kind = ast.MConstr{Params: params, Body: body}
	default:
		return ast.MemberDef{}, fmt.Errorf("loader: unknown member kind %q", m.Kind)
	}

	return ast.MemberDef{Name: m.Name, Kind: kind, Mods: convertMods(m.Mods), Atts: atts, At: at}, nil
}

func convertTypeDef(file string, d yamlTypeDef) (ast.TypeDef, error) {
	at := pos(file, d.Pos)

	var kind ast.TypeDefKind
	switch d.Kind {
	case "class":
		var extends *ast.Path
		if d.Extends != nil {
			p := d.Extends.toAST()
			extends = &p
		}
		implements := make([]ast.Path, len(d.Implements))
		for i, p := range d.Implements {
			implements[i] = p.toAST()
		}
		kind = ast.KindClass{Extends: extends, Implements: implements}
	case "struct":
		kind = ast.KindStruct{}
	default:
		return ast.TypeDef{}, fmt.Errorf("loader: unknown type-def kind %q", d.Kind)
	}

	members := make([]ast.MemberDef, len(d.Members))
	for i, m := range d.Members {
		mm, err := convertMember(file, m)
		if err != nil {
			return ast.TypeDef{}, fmt.Errorf("loader: type %s: %w", d.Path.Name, err)
		}
		members[i] = mm
	}

	return ast.TypeDef{
		PathV:   d.Path.toAST(),
		Kind:    kind,
		Mods:    convertMods(d.Mods),
		Members: members,
		At:      at,
	}, nil
}

func convertModule(raw yamlModule, file string) (*ast.Module, error) {
	imports := make([]ast.Path, len(raw.Imports))
	for i, p := range raw.Imports {
		imports[i] = p.toAST()
	}
	defs := make([]ast.TypeDef, len(raw.Defs))
	for i, d := range raw.Defs {
		td, err := convertTypeDef(file, d)
		if err != nil {
			return nil, err
		}
		defs[i] = td
	}
	return &ast.Module{Imports: imports, Defs: defs, Package: raw.Package.toAST()}, nil
}
