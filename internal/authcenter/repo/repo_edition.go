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

package repo

import (
	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/pkg/database"
)

type IEditionRepository interface {
	CreateEdition(edition *model.Edition) error
	GetEditionById(id int64) (*model.Edition, error)
	ListEditions() ([]model.Edition, error)
}

type EditionRepo struct {
	database.IDatabase
}

func NewEditionRepo(db database.IDatabase) IEditionRepository {
	return &EditionRepo{
		IDatabase: db,
	}
}

func (r *EditionRepo) CreateEdition(edition *model.Edition) error {
	return r.Database().Create(edition).Error
}

func (r *EditionRepo) GetEditionById(id int64) (*model.Edition, error) {
	var edition model.Edition
	err := r.Database().Scopes(notDeleted).
		Where("id = ?", id).First(&edition).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &edition, nil
}

func (r *EditionRepo) ListEditions() ([]model.Edition, error) {
	var editions []model.Edition
	err := r.Database().Scopes(notDeleted).
		Order("name ASC").
		Find(&editions).Error
	return editions, err
}
