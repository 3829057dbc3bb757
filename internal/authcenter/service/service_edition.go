// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"errors"

	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/internal/authcenter/repo"
)

// EditionService manages the feature tiers tenants are assigned to.
type EditionService struct {
	editionRepo repo.IEditionRepository
}

func NewEditionService(editionRepo repo.IEditionRepository) *EditionService {
	return &EditionService{
		editionRepo: editionRepo,
	}
}

func (es *EditionService) CreateEdition(name, displayName string, creatorUserId *int64) (*model.Edition, error) {
	if name == "" {
		return nil, errors.New("edition name is required")
	}
	edition := &model.Edition{
		Name:        name,
		DisplayName: displayName,
	}
	edition.CreatorUserId = creatorUserId
	if err := es.editionRepo.CreateEdition(edition); err != nil {
		return nil, err
	}
	return edition, nil
}

func (es *EditionService) GetEdition(id int64) (*model.Edition, error) {
	return es.editionRepo.GetEditionById(id)
}

func (es *EditionService) ListEditions() ([]model.Edition, error) {
	return es.editionRepo.ListEditions()
}
