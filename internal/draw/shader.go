package draw

// gradientShaderSrc fills triangles with a linear (Kind 0) or two-circle
// radial (Kind 1) gradient evaluated per pixel in destination space.
const gradientShaderSrc = `//kage:unit pixels

package main

var Kind float
var From vec2
var To vec2
var R0 float
var R1 float
var Count float
var Offsets [8]float
var Colors [8]vec4
var Alpha float

func linearT(p vec2) float {
	d := To - From
	l := dot(d, d)
	if l <= 0.0 {
		return 0.0
	}
	return dot(p-From, d) / l
}

func radialT(p vec2) float {
	dc := To - From
	dr := R1 - R0
	q := p - From
	a := dot(dc, dc) - dr*dr
	b := -2.0 * (dot(q, dc) + R0*dr)
	c := dot(q, q) - R0*R0
	if abs(a) < 0.000001 {
		if abs(b) < 0.000001 {
			return 0.0
		}
		return -c / b
	}
	disc := b*b - 4.0*a*c
	if disc < 0.0 {
		return 0.0
	}
	s := sqrt(disc)
	t1 := (-b + s) / (2.0 * a)
	t2 := (-b - s) / (2.0 * a)
	t := max(t1, t2)
	if R0+dr*t < 0.0 {
		t = min(t1, t2)
	}
	return t
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	// dstPos is in texture pixels; the paint geometry is image-local.
	p := dstPos.xy - imageDstOrigin()
	t := 0.0
	if Kind < 0.5 {
		t = linearT(p)
	} else {
		t = radialT(p)
	}
	t = clamp(t, 0.0, 1.0)

	c := Colors[0]
	for i := 1; i < 8; i++ {
		if float(i) < Count && t >= Offsets[i-1] {
			k := 1.0
			if Offsets[i] > Offsets[i-1] {
				k = clamp((t-Offsets[i-1])/(Offsets[i]-Offsets[i-1]), 0.0, 1.0)
			}
			c = Colors[i-1] + (Colors[i]-Colors[i-1])*k
		}
	}
	a := c.a * Alpha
	return vec4(c.rgb*a, a)
}
`

// gradientUniforms packs a screen-space paint into the shader's uniforms.
func gradientUniforms(p Paint, alpha float64) map[string]any {
	kind := float32(0)
	if p.Kind == PaintRadial {
		kind = 1
	}
	offsets := make([]float32, MaxStops)
	colors := make([]float32, 4*MaxStops)
	for i, s := range p.Stops {
		offsets[i] = float32(s.Offset)
		colors[4*i] = float32(s.Color.R)
		colors[4*i+1] = float32(s.Color.G)
		colors[4*i+2] = float32(s.Color.B)
		colors[4*i+3] = float32(s.Color.A)
	}
	return map[string]any{
		"Kind":    kind,
		"From":    []float32{float32(p.From.X), float32(p.From.Y)},
		"To":      []float32{float32(p.To.X), float32(p.To.Y)},
		"R0":      float32(p.R0),
		"R1":      float32(p.R1),
		"Count":   float32(len(p.Stops)),
		"Offsets": offsets,
		"Colors":  colors,
		"Alpha":   float32(alpha),
	}
}
