// Package constants contributes named constants: pi and e computed to
// the working precision, and the CODATA recommended values for the
// fundamental physical constants as fixed decimal literals. Constants
// resolve like zero-arity operations ("pi" pushes one value), and the
// "const <id>" operation reaches them through a trailing word argument.
// The module depends on the decimal module for its value kind.
package constants

import (
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/littlecalc/littlecalc/pkg/calc"
	"github.com/littlecalc/littlecalc/pkg/modules/decimal"
	"github.com/littlecalc/littlecalc/pkg/types"
)

// Module registers the constant set.
type Module struct {
	ctx *apd.Context

	descriptions map[string]string
	fixed        map[string]string
	computed     map[string]func(ctx *apd.Context) (*apd.Decimal, error)
}

// New returns the constants module at the decimal default precision.
func New() *Module {
	return WithContext(apd.BaseContext.WithPrecision(decimal.DefaultPrecision))
}

// WithContext returns a constants module computing pi and e with ctx,
// normally the decimal module's context so precisions agree.
func WithContext(ctx *apd.Context) *Module {
	m := &Module{
		ctx:          ctx,
		descriptions: make(map[string]string),
		fixed:        make(map[string]string),
		computed:     make(map[string]func(ctx *apd.Context) (*apd.Decimal, error)),
	}
	m.addComputed("pi", "ratio of a circle's circumference to its diameter", computePi)
	m.addComputed("e", "Euler's number", computeE)
	m.addComputed("mu0", "magnetic constant (N A^-2)", computeMu0)
	m.addComputed("eps0", "electric constant (F m^-1)", computeEps0)
	m.addComputed("Z0", "characteristic impedance of vacuum (Ohm)", computeZ0)
	m.addDefaults()
	return m
}

// Add registers a fixed constant given as a decimal literal.
func (m *Module) Add(id, description, value string) {
	m.descriptions[id] = description
	m.fixed[id] = strings.TrimSpace(value)
}

func (m *Module) addComputed(id, description string, fn func(ctx *apd.Context) (*apd.Decimal, error)) {
	m.descriptions[id] = description
	m.computed[id] = fn
}

// Describe returns the description of a constant id, if known.
func (m *Module) Describe(id string) (string, bool) {
	d, ok := m.descriptions[id]
	return d, ok
}

// IDs returns all constant ids, unsorted.
func (m *Module) IDs() []string {
	ids := make([]string, 0, len(m.descriptions))
	for id := range m.descriptions {
		ids = append(ids, id)
	}
	return ids
}

func (m *Module) Name() string { return "constants" }

func (m *Module) Requires() []string { return []string{"decimal"} }

func (m *Module) Load(reg *calc.Registry) error {
	for id := range m.fixed {
		text := m.fixed[id]
		reg.RegisterConstant(id, func() (types.Value, error) {
			return decimal.Parse(text)
		})
	}
	for id := range m.computed {
		id := id
		fn := m.computed[id]
		reg.RegisterConstant(id, func() (types.Value, error) {
			d, err := fn(m.ctx)
			if err != nil {
				return nil, calc.DomainError{Op: "const " + id, Reason: err.Error()}
			}
			return decimal.NewValue(d), nil
		})
	}

	reg.Register(&calc.Operation{
		Name: "const",
		Doc:  "const <id>: push the named constant",
		Fn: func(ctx *calc.Context) error {
			id, err := ctx.NextWord("const")
			if err != nil {
				return err
			}
			v, err := ctx.Registry.ResolveConstant(id)
			if err != nil {
				return err
			}
			ctx.Stack.Push(v)
			return nil
		},
	})
	return nil
}

// computePi runs the Gauss-Legendre iteration at five extra digits and
// rounds back, converging quadratically (a handful of iterations even
// at large precision).
func computePi(ctx *apd.Context) (*apd.Decimal, error) {
	boosted := ctx.WithPrecision(ctx.Precision + 5)
	var err error
	ed := func(_ apd.Condition, e error) {
		if err == nil && e != nil {
			err = e
		}
	}

	one := apd.New(1, 0)
	two := apd.New(2, 0)
	four := apd.New(4, 0)

	a := apd.New(1, 0)
	b := new(apd.Decimal)
	ed(boosted.Sqrt(b, two))
	ed(boosted.Quo(b, one, b)) // 1/sqrt(2)
	t := new(apd.Decimal)
	ed(boosted.Quo(t, one, four))
	p := apd.New(1, 0)

	pi := new(apd.Decimal)
	last := new(apd.Decimal)
	var tmp, an, bn apd.Decimal
	for err == nil {
		// an = (a+b)/2, bn = sqrt(a*b)
		ed(boosted.Add(&an, a, b))
		ed(boosted.Quo(&an, &an, two))
		ed(boosted.Mul(&bn, a, b))
		ed(boosted.Sqrt(&bn, &bn))

		// t -= p*(a-an)^2, p *= 2
		ed(boosted.Sub(&tmp, a, &an))
		ed(boosted.Mul(&tmp, &tmp, &tmp))
		ed(boosted.Mul(&tmp, &tmp, p))
		ed(boosted.Sub(t, t, &tmp))
		ed(boosted.Mul(p, p, two))

		a.Set(&an)
		b.Set(&bn)

		// pi = (a+b)^2 / (4t)
		ed(boosted.Add(&tmp, a, b))
		ed(boosted.Mul(&tmp, &tmp, &tmp))
		ed(boosted.Mul(pi, t, four))
		ed(boosted.Quo(pi, &tmp, pi))

		if err == nil && pi.Cmp(last) == 0 {
			break
		}
		last.Set(pi)
	}
	if err != nil {
		return nil, err
	}
	_, err = ctx.Round(pi, pi)
	return pi, err
}

// computeE sums the Taylor series for e^1 at five extra digits until
// the partial sums stop changing, then rounds back.
func computeE(ctx *apd.Context) (*apd.Decimal, error) {
	boosted := ctx.WithPrecision(ctx.Precision + 5)
	var err error
	ed := func(_ apd.Condition, e error) {
		if err == nil && e != nil {
			err = e
		}
	}

	sum := apd.New(1, 0)
	last := new(apd.Decimal)
	fact := apd.New(1, 0)
	var term apd.Decimal
	for i := int64(1); err == nil; i++ {
		ed(boosted.Mul(fact, fact, apd.New(i, 0)))
		ed(boosted.Quo(&term, apd.New(1, 0), fact))
		ed(boosted.Add(sum, sum, &term))
		if err == nil && sum.Cmp(last) == 0 {
			break
		}
		last.Set(sum)
	}
	if err != nil {
		return nil, err
	}
	_, err = ctx.Round(sum, sum)
	return sum, err
}

// speedOfLight is the exact defined value of c0, shared by the derived
// electromagnetic constants below.
func speedOfLight() *apd.Decimal { return apd.New(299792458, 0) }

// computeMu0 returns 4*pi*1e-7 (pre-2019 defined value).
func computeMu0(ctx *apd.Context) (*apd.Decimal, error) {
	pi, err := computePi(ctx)
	if err != nil {
		return nil, err
	}
	res := new(apd.Decimal)
	if _, err := ctx.Mul(res, pi, apd.New(4, -7)); err != nil {
		return nil, err
	}
	return res, nil
}

// computeZ0 returns mu0*c0.
func computeZ0(ctx *apd.Context) (*apd.Decimal, error) {
	mu0, err := computeMu0(ctx)
	if err != nil {
		return nil, err
	}
	res := new(apd.Decimal)
	if _, err := ctx.Mul(res, mu0, speedOfLight()); err != nil {
		return nil, err
	}
	return res, nil
}

// computeEps0 returns 1/(mu0*c0^2).
func computeEps0(ctx *apd.Context) (*apd.Decimal, error) {
	z0, err := computeZ0(ctx)
	if err != nil {
		return nil, err
	}
	res := new(apd.Decimal)
	if _, err := ctx.Mul(res, z0, speedOfLight()); err != nil {
		return nil, err
	}
	if _, err := ctx.Quo(res, apd.New(1, 0), res); err != nil {
		return nil, err
	}
	return res, nil
}

// addDefaults installs the 2014 CODATA recommended values
// (http://physics.nist.gov/constants) plus the adopted conventional
// values, mirroring the original littlecalc constant set.
func (m *Module) addDefaults() {
	// universal constants
	m.Add("c0", "speed of light in vacuum (m s^-1)", "299792458")
	m.Add("G", "Newtonian constant of gravitation (m^3 kg^-1 s^-2)", "6.67408e-11")
	m.Add("h", "Planck constant (J s)", "6.626070040e-34")
	m.Add("hbar", "Planck constant over 2 pi (J s)", "1.054571800e-34")
	m.Add("m_P", "Planck mass (kg)", "2.176470e-8")
	m.Add("T_P", "Planck temperature (K)", "1.416808e32")
	m.Add("l_P", "Planck length (m)", "1.616229e-35")
	m.Add("t_P", "Planck time (s)", "5.39116e-44")

	// electromagnetic constants
	m.Add("e0", "elementary charge (C)", "1.6021766208e-19")
	m.Add("Phi0", "magnetic flux quantum (Wb)", "2.067833831e-15")
	m.Add("G0", "conductance quantum (S)", "7.7480917310e-5")
	m.Add("K_J", "Josephson constant (Hz V^-1)", "483597.8525e9")
	m.Add("R_K", "von Klitzing constant (Ohm)", "25812.8074555")
	m.Add("mu_B", "Bohr magneton (J T^-1)", "927.4009994e-26")
	m.Add("mu_N", "nuclear magneton (J T^-1)", "5.050783699e-27")

	// physio-chemical constants
	m.Add("N_A", "Avogadro constant (mol^-1)", "6.022140857e23")
	m.Add("m_u", "atomic mass constant (kg)", "1.660539040e-27")
	m.Add("F", "Faraday constant (C mol^-1)", "96485.33289")
	m.Add("R", "molar gas constant (J mol^-1 K^-1)", "8.3144598")
	m.Add("k_B", "Boltzmann constant (J K^-1)", "1.38064852e-23")
	m.Add("V_m", "molar volume of ideal gas (m^3 mol^-1) (at 273.15 K, 101.325 kPa)", "22.413962e-3")
	m.Add("sigma", "Stefan-Boltzmann constant (W m^-2 K^-4)", "5.670367e-8")
	m.Add("c1", "first radiation constant (W m^2)", "3.741771790e-16")
	m.Add("c2", "second radiation constant (m K)", "1.43877736e-2")

	// atomic and nuclear constants
	m.Add("alpha", "fine-structure constant", "7.2973525664e-3")
	m.Add("Ry", "Rydberg constant (m^-1)", "10973731.568508")
	m.Add("a0", "Bohr radius (m)", "0.52917721067e-10")
	m.Add("E_h", "Hartree energy (J)", "4.359744650e-18")

	m.Add("m_e", "electron mass (kg)", "9.10938356e-31")
	m.Add("lambda_C", "Compton wavelength (m)", "2.4263102367e-12")
	m.Add("r_e", "classical electron radius (m)", "2.8179403227e-15")
	m.Add("mu_e", "electron magnetic moment (J T^-1)", "-928.4764620e-26")
	m.Add("g_e", "electron g factor", "-2.00231930436182")

	m.Add("m_mu", "muon mass (kg)", "1.883531594e-28")
	m.Add("mu_mu", "muon magnetic moment (J T^-1)", "-4.49044826e-26")
	m.Add("g_mu", "muon g factor", "-2.0023318418")

	m.Add("m_tau", "tau mass (kg)", "3.16747e-27")

	m.Add("m_p", "proton mass (kg)", "1.672621898e-27")
	m.Add("mu_p", "proton magnetic moment (J T^-1)", "1.4106067873e-26")
	m.Add("g_p", "proton g factor", "5.585694702")

	m.Add("m_n", "neutron mass (kg)", "1.674927471e-27")
	m.Add("mu_n", "neutron magnetic moment (J T^-1)", "-0.96623650e-26")
	m.Add("g_n", "neutron g factor", "-3.82608545")

	m.Add("m_d", "deuteron mass (kg)", "3.343583719e-27")
	m.Add("mu_d", "deuteron magnetic moment (J T^-1)", "0.4330735040e-26")
	m.Add("g_d", "deuteron g factor", "0.8574382311")

	m.Add("m_t", "triton mass (kg)", "5.007356665e-27")
	m.Add("mu_t", "triton magnetic moment (J T^-1)", "1.504609503e-26")
	m.Add("g_t", "triton g factor", "5.957924920")

	m.Add("m_h", "helion mass (kg)", "5.006412700e-27")
	m.Add("mu_h", "helion magnetic moment (J T^-1)", "-1.074617522e-26")
	m.Add("g_h", "helion g factor", "-4.255250616")

	m.Add("m_alpha", "alpha particle mass (kg)", "6.644657230e-27")

	// adopted values
	m.Add("g", "standard acceleration of gravity (m s^-2)", "9.80665")
	m.Add("atm", "standard atmosphere (Pa)", "101325")
}
