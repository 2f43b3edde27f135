package loader

import (
	"fmt"

	"gopkg.in/yaml.v2"

	"molang/ast"
)

// ToYAML is the inverse of Load: it serializes an ast.Module back to the
// same YAML shape Load reads. Positions round-trip as line/col pairs
// (Position.Max is dropped, matching Load's one-point-per-node contract).
// Encode+Load is how this repository exercises the round-trip testable
// property without a real parser to reparse surface syntax: encoding and
// reloading a module must produce a structurally-equal AST.
func ToYAML(mod *ast.Module) ([]byte, error) {
	raw, err := encodeModule(mod)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(raw)
}

func encodePath(p ast.Path) yamlPath {
	return yamlPath{Pkg: p.Pkg, Name: p.Name}
}

func encodeVariability(v ast.Variability) string {
	if v == ast.Variable {
		return "var"
	}
	return "val"
}

func encodeTy(t ast.Ty) (yamlTy, error) {
	switch v := t.(type) {
	case ast.TyPrim:
		return yamlTy{Kind: string(v.Kind)}, nil
	case ast.TyPath:
		p := encodePath(v.Path)
		return yamlTy{Kind: "path", Path: &p}, nil
	case ast.TyClass:
		p := encodePath(v.Path)
		return yamlTy{Kind: "class", Path: &p}, nil
	case ast.TyFunc:
		params := make([]yamlTy, len(v.Params))
		for i, p := range v.Params {
			ep, err := encodeTy(p)
			if err != nil {
				return yamlTy{}, err
			}
			params[i] = ep
		}
		ret, err := encodeTy(v.Ret)
		if err != nil {
			return yamlTy{}, err
		}
		conv := "normal"
		if v.Conv == ast.VarArgs {
			conv = "vararg"
		}
		return yamlTy{Kind: "func", Params: params, Ret: &ret, Conv: conv}, nil
	case ast.TyTuple:
		elems := make([]yamlTy, len(v.Elems))
		for i, e := range v.Elems {
			ee, err := encodeTy(e)
			if err != nil {
				return yamlTy{}, err
			}
			elems[i] = ee
		}
		return yamlTy{Kind: "tuple", Elems: elems}, nil
	default:
		return yamlTy{}, fmt.Errorf("loader: unreachable ty variant %T", t)
	}
}

func encodeConst(c ast.Const) (yamlConst, error) {
	switch v := c.(type) {
	case ast.ConstInt:
		return yamlConst{Kind: "int", Int: v.Value}, nil
	case ast.ConstFloat:
		return yamlConst{Kind: "float", Float: v.Value}, nil
	case ast.ConstString:
		return yamlConst{Kind: "string", Str: v.Value}, nil
	case ast.ConstBool:
		return yamlConst{Kind: "bool", Bool: v.Value}, nil
	case ast.ConstNull:
		return yamlConst{Kind: "null"}, nil
	default:
		return yamlConst{}, fmt.Errorf("loader: unreachable const variant %T", c)
	}
}

func encodePosOf(p ast.Position) yamlPos {
	return yamlPos{Line: p.Min.Line, Col: p.Min.Col}
}

func encodeExpr(e ast.Expr) (yamlExpr, error) {
	out := yamlExpr{Pos: encodePosOf(e.Pos())}

	switch v := e.(type) {
	case ast.This:
		out.Kind = "this"
	case ast.Super:
		out.Kind = "super"
	case ast.ConstExpr:
		out.Kind = "const"
		c, err := encodeConst(v.Value)
		if err != nil {
			return out, err
		}
		out.Value = &c
	case ast.Ident:
		out.Kind = "ident"
		out.Name = v.Name
	case ast.Field:
		out.Kind = "field"
		out.Name = v.Name
		obj, err := encodeExprPtr(v.Obj)
		if err != nil {
			return out, err
		}
		out.Obj = obj
	case ast.ArrayIndex:
		out.Kind = "index"
		obj, err := encodeExprPtr(v.Obj)
		if err != nil {
			return out, err
		}
		idx, err := encodeExprPtr(v.Idx)
		if err != nil {
			return out, err
		}
		out.Obj, out.Idx = obj, idx
	case ast.BinOp:
		out.Kind = "binop"
		out.Op = v.Op
		a, err := encodeExprPtr(v.A)
		if err != nil {
			return out, err
		}
		b, err := encodeExprPtr(v.B)
		if err != nil {
			return out, err
		}
		out.A, out.B = a, b
	case ast.UnOp:
		out.Kind = "unop"
		out.Op = v.Op
		a, err := encodeExprPtr(v.A)
		if err != nil {
			return out, err
		}
		out.A = a
	case ast.Block:
		out.Kind = "block"
		exprs, err := encodeExprs(v.Exprs)
		if err != nil {
			return out, err
		}
		out.Exprs = exprs
	case ast.Call:
		out.Kind = "call"
		callee, err := encodeExprPtr(v.Callee)
		if err != nil {
			return out, err
		}
		args, err := encodeExprs(v.Args)
		if err != nil {
			return out, err
		}
		out.Callee, out.Args = callee, args
	case ast.Paren:
		out.Kind = "paren"
		inner, err := encodeExprPtr(v.E)
		if err != nil {
			return out, err
		}
		out.E = inner
	case ast.If:
		out.Kind = "if"
		cond, err := encodeExprPtr(v.Cond)
		if err != nil {
			return out, err
		}
		then, err := encodeExprPtr(v.Then)
		if err != nil {
			return out, err
		}
		out.Cond, out.Then = cond, then
		if v.Else != nil {
			els, err := encodeExprPtr(v.Else)
			if err != nil {
				return out, err
			}
			out.Else = els
		}
	case ast.While:
		out.Kind = "while"
		cond, err := encodeExprPtr(v.Cond)
		if err != nil {
			return out, err
		}
		body, err := encodeExprPtr(v.Body)
		if err != nil {
			return out, err
		}
		out.Cond, out.Body = cond, body
	case ast.Var:
		out.Kind = "var"
		out.Name = v.Name
		out.Variability = encodeVariability(v.Variability)
		init, err := encodeExprPtr(v.Init)
		if err != nil {
			return out, err
		}
		out.Init = init
		if v.Type != nil {
			t, err := encodeTy(v.Type)
			if err != nil {
				return out, err
			}
			out.Type = &t
		}
	case ast.New:
		out.Kind = "new"
		p := encodePath(v.Path)
		out.Path = &p
		args, err := encodeExprs(v.Args)
		if err != nil {
			return out, err
		}
		out.Args = args
	case ast.TupleExpr:
		out.Kind = "tuple"
		exprs, err := encodeExprs(v.Elems)
		if err != nil {
			return out, err
		}
		out.Exprs = exprs
	case ast.Cast:
		out.Kind = "cast"
		inner, err := encodeExprPtr(v.E)
		if err != nil {
			return out, err
		}
		t, err := encodeTy(v.Type)
		if err != nil {
			return out, err
		}
		out.E, out.Type = inner, &t
	case ast.Break:
		out.Kind = "break"
	case ast.Continue:
		out.Kind = "continue"
	case ast.Return:
		out.Kind = "return"
		if v.Value != nil {
			val, err := encodeExprPtr(v.Value)
			if err != nil {
				return out, err
			}
			out.Init = val
		}
	default:
		return out, fmt.Errorf("loader: unreachable expr variant %T", e)
	}
	return out, nil
}

func encodeExprPtr(e ast.Expr) (*yamlExpr, error) {
	ye, err := encodeExpr(e)
	if err != nil {
		return nil, err
	}
	return &ye, nil
}

func encodeExprs(es []ast.Expr) ([]yamlExpr, error) {
	out := make([]yamlExpr, len(es))
	for i, e := range es {
		ye, err := encodeExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = ye
	}
	return out, nil
}

func encodeParams(ps []ast.Param) ([]yamlParam, error) {
	out := make([]yamlParam, len(ps))
	for i, p := range ps {
		ty, err := encodeTy(p.Type)
		if err != nil {
			return nil, err
		}
		out[i] = yamlParam{Name: p.Name, Type: ty}
	}
	return out, nil
}

func encodeMods(mods ast.ModSet) []string {
	out := make([]string, 0, len(mods))
	for m := range mods {
		out = append(out, string(m))
	}
	return out
}

func encodeAtts(atts map[string]ast.Const) (map[string]yamlConst, error) {
	if len(atts) == 0 {
		return nil, nil
	}
	out := make(map[string]yamlConst, len(atts))
	for name, c := range atts {
		ec, err := encodeConst(c)
		if err != nil {
			return nil, err
		}
		out[name] = ec
	}
	return out, nil
}

func encodeMember(m ast.MemberDef) (yamlMember, error) {
	out := yamlMember{Name: m.Name, Pos: encodePosOf(m.At)}
	atts, err := encodeAtts(m.Atts)
	if err != nil {
		return out, err
	}
	out.Mods = encodeMods(m.Mods)
	out.Atts = atts

	switch k := m.Kind.(type) {
	case ast.MVar:
		out.Kind = "var"
		out.Variability = encodeVariability(k.Variability)
		if k.Type != nil {
			t, err := encodeTy(k.Type)
			if err != nil {
				return out, err
			}
			out.Type = &t
		}
		if k.Init != nil {
			init, err := encodeExprPtr(k.Init)
			if err != nil {
				return out, err
			}
			out.Init = init
		}
	case ast.MFunc:
		out.Kind = "func"
		params, err := encodeParams(k.Params)
		if err != nil {
			return out, err
		}
		ret, err := encodeTy(k.Ret)
		if err != nil {
			return out, err
		}
		out.Params, out.Ret = params, &ret
		if k.Body != nil {
			b, err := encodeExprPtr(*k.Body)
			if err != nil {
				return out, err
			}
			out.Body = b
		}
	case ast.MConstr:
		out.Kind = "constr"
		params, err := encodeParams(k.Params)
		if err != nil {
			return out, err
		}
		out.Params = params
		if k.Body != nil {
			b, err := encodeExprPtr(*k.Body)
			if err != nil {
				return out, err
			}
			out.Body = b
		}
	default:
		return out, fmt.Errorf("loader: unreachable member kind %T", m.Kind)
	}
	return out, nil
}

func encodeTypeDef(d ast.TypeDef) (yamlTypeDef, error) {
	out := yamlTypeDef{Path: encodePath(d.PathV), Pos: encodePosOf(d.At), Mods: encodeMods(d.Mods)}

	switch k := d.Kind.(type) {
	case ast.KindClass:
		out.Kind = "class"
		if k.Extends != nil {
			p := encodePath(*k.Extends)
			out.Extends = &p
		}
		implements := make([]yamlPath, len(k.Implements))
		for i, p := range k.Implements {
			implements[i] = encodePath(p)
		}
		out.Implements = implements
	case ast.KindStruct:
		out.Kind = "struct"
	default:
		return out, fmt.Errorf("loader: unreachable type-def kind %T", d.Kind)
	}

	members := make([]yamlMember, len(d.Members))
	for i, m := range d.Members {
		em, err := encodeMember(m)
		if err != nil {
			return out, err
		}
		members[i] = em
	}
	out.Members = members
	return out, nil
}

func encodeModule(mod *ast.Module) (yamlModule, error) {
	imports := make([]yamlPath, len(mod.Imports))
	for i, p := range mod.Imports {
		imports[i] = encodePath(p)
	}
	defs := make([]yamlTypeDef, len(mod.Defs))
	for i, d := range mod.Defs {
		ed, err := encodeTypeDef(d)
		if err != nil {
			return yamlModule{}, err
		}
		defs[i] = ed
	}
	return yamlModule{Package: encodePath(mod.Package), Imports: imports, Defs: defs}, nil
}
