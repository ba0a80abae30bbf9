package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// LoadError is returned when the model artifact cannot be read or decoded.
// It is never fatal: the server keeps running with prediction disabled.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return e.Err.Error() }

func (e *LoadError) Unwrap() error { return e.Err }

type modelArtifact struct {
	ModelType    string           `json:"model_type"`
	FeatureNames []string         `json:"feature_names_in"`
	Estimators   []regressionTree `json:"estimators"`
	Tree         *regressionTree  `json:"tree"`
	Coef         []float64        `json:"coef"`
	Intercept    float64          `json:"intercept"`
}

// LoadModel reads the JSON model artifact at path. An artifact that carries
// no trained parameters loads successfully; its Predict returns ErrNotFitted.
func LoadModel(path string) (Regressor, error) {
	model, _, err := loadArtifact(path)
	return model, err
}

// loadArtifact is LoadModel plus the sha256 of the artifact bytes.
func loadArtifact(path string) (Regressor, string, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &LoadError{Path: path, Err: err}
	}

	var art modelArtifact
	if err := json.Unmarshal(payload, &art); err != nil {
		return nil, "", &LoadError{Path: path, Err: fmt.Errorf("decode artifact %s: %w", path, err)}
	}

	model, err := buildRegressor(art)
	if err != nil {
		return nil, "", &LoadError{Path: path, Err: fmt.Errorf("incompatible artifact %s: %w", path, err)}
	}
	sum := sha256.Sum256(payload)
	return model, hex.EncodeToString(sum[:]), nil
}

func buildRegressor(art modelArtifact) (Regressor, error) {
	switch art.ModelType {
	case ModelTypeRandomForest:
		if len(art.Estimators) == 0 {
			return &forestRegressor{modelType: art.ModelType}, nil
		}
		if err := checkFeatureNames(art.FeatureNames); err != nil {
			return nil, err
		}
		for i := range art.Estimators {
			if err := art.Estimators[i].validate(len(art.FeatureNames)); err != nil {
				return nil, fmt.Errorf("estimator %d: %w", i, err)
			}
		}
		return &forestRegressor{
			modelType:    art.ModelType,
			featureNames: art.FeatureNames,
			trees:        art.Estimators,
		}, nil

	case ModelTypeDecisionTree:
		if art.Tree == nil || art.Tree.nodeCount() == 0 {
			return &forestRegressor{modelType: art.ModelType}, nil
		}
		if err := checkFeatureNames(art.FeatureNames); err != nil {
			return nil, err
		}
		if err := art.Tree.validate(len(art.FeatureNames)); err != nil {
			return nil, err
		}
		return &forestRegressor{
			modelType:    art.ModelType,
			featureNames: art.FeatureNames,
			trees:        []regressionTree{*art.Tree},
		}, nil

	case ModelTypeLinear:
		if len(art.Coef) == 0 {
			return &linearRegressor{}, nil
		}
		if err := checkFeatureNames(art.FeatureNames); err != nil {
			return nil, err
		}
		if len(art.Coef) != len(art.FeatureNames) {
			return nil, fmt.Errorf("%d coefficients for %d features", len(art.Coef), len(art.FeatureNames))
		}
		return &linearRegressor{
			featureNames: art.FeatureNames,
			coef:         art.Coef,
			intercept:    art.Intercept,
		}, nil

	case "":
		return nil, errors.New("missing model_type")
	default:
		return nil, fmt.Errorf("unsupported model_type %q", art.ModelType)
	}
}

func checkFeatureNames(names []string) error {
	if len(names) == 0 {
		return errors.New("fitted model declares no feature names")
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			return errors.New("empty feature name")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate feature name %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
