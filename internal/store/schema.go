package store

const Schema = `
CREATE TABLE IF NOT EXISTS motorcycles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	brand TEXT NOT NULL,
	model TEXT NOT NULL,
	year INTEGER,
	registration_number TEXT,
	current_mileage INTEGER,
	image_filename TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS jobs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	motorcycle_id INTEGER,
	title TEXT NOT NULL,
	description TEXT,
	date TEXT NOT NULL,
	mileage INTEGER,
	cost REAL,
	completed INTEGER DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (motorcycle_id) REFERENCES motorcycles(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_jobs_motorcycle_id ON jobs(motorcycle_id);

CREATE TABLE IF NOT EXISTS images (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id INTEGER NOT NULL,
	filename TEXT NOT NULL UNIQUE,
	original_name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_images_job_id ON images(job_id);

CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id INTEGER NOT NULL,
	content TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_notes_job_id ON notes(job_id);

CREATE TABLE IF NOT EXISTS shopping_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id INTEGER NOT NULL,
	item_name TEXT NOT NULL,
	quantity INTEGER DEFAULT 1,
	purchased INTEGER DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_shopping_items_job_id ON shopping_items(job_id);

-- Backlog of app features, managed from the settings page
CREATE TABLE IF NOT EXISTS features (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT,
	status TEXT DEFAULT 'backlog',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`
