package material

import (
	"math"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
)

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract calculates the refraction of unit vector uv through a surface with
// normal n using Snell's law, where etaiOverEtat is the ratio of the
// refractive indices. Returns false on total internal reflection (negative
// refraction discriminant).
func Refract(uv, n core.Vec3, etaiOverEtat float64) (core.Vec3, bool) {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	sinThetaSq := math.Max(0, 1.0-cosTheta*cosTheta)

	discriminant := 1.0 - etaiOverEtat*etaiOverEtat*sinThetaSq
	if discriminant < 0 {
		return core.Vec3{}, false
	}

	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(discriminant))
	return rOutPerp.Add(rOutParallel), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

// BouguerAttenuation returns exp(-extinction * distance), the volumetric
// transmittance over the given distance through an absorptive medium.
func BouguerAttenuation(extinction core.Vec3, distance float64) core.Vec3 {
	if extinction.IsZero() || distance <= 0 {
		return core.NewVec3(1, 1, 1)
	}
	return extinction.Multiply(-distance).Exp()
}
